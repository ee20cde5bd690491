package domain

// NoDescription is returned for goods codes missing from the catalog.
const NoDescription = "No description available."

var goodsDescriptions = map[string]string{
	"52094200": "FABRICS - WOVEN DENIM",
	"58071000": "ACCESSORIES - BADGE LABEL",
	"48211000": "ACCESSORIES - WOVEN LABEL",
	"96071900": "ACCESSORIES - ZIPPER",
	"96071100": "ACCESSORIES - ZIPPER",
	"96061000": "ACCESSORIES - SNAP BUTTON",
	"59032010": "FABRICS - POLY TEXTILE",
	"39262090": "ACCESSORIES - HANGER",
	"62171000": "ACCESSORIES - SCRAP FABRIC",
	"60063200": "FABRICS - SYNTHETIC",
}

// Categories whose models were trained on too little data to be trusted.
var dataPoorGoods = map[string]struct{}{
	"58071000": {},
	"96061000": {},
}

// GoodsDescriptions returns a copy of the built-in goods catalog.
func GoodsDescriptions() map[string]string {
	out := make(map[string]string, len(goodsDescriptions))
	for k, v := range goodsDescriptions {
		out[k] = v
	}
	return out
}

func IsDataPoor(code string) bool {
	_, ok := dataPoorGoods[code]
	return ok
}
