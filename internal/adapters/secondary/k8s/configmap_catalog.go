package k8s

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"

	"price-verification-service/internal/config"
	ports "price-verification-service/internal/core/ports/output"
)

type configMapCatalog struct {
	client    kubernetes.Interface
	namespace string
	name      string
}

// NewConfigMapCatalogSource reads goods descriptions from the data of a
// ConfigMap, one key per goods code.
func NewConfigMapCatalogSource(cfg *config.KubernetesConfig) (ports.GoodsCatalogSource, error) {
	var restCfg *rest.Config
	var err error

	if cfg.InCluster {
		restCfg, err = rest.InClusterConfig()
	} else if cfg.KubeConfigPath != "" {
		restCfg, err = clientcmd.BuildConfigFromFlags("", cfg.KubeConfigPath)
	} else {
		// Try default kubeconfig location
		home, _ := os.UserHomeDir()
		kubeconfig := filepath.Join(home, ".kube", "config")
		restCfg, err = clientcmd.BuildConfigFromFlags("", kubeconfig)
	}
	if err != nil {
		return nil, fmt.Errorf("build k8s config: %w", err)
	}

	client, err := kubernetes.NewForConfig(restCfg)
	if err != nil {
		return nil, fmt.Errorf("create k8s client: %w", err)
	}

	return newConfigMapCatalog(client, cfg.Namespace, cfg.ConfigMapName), nil
}

func newConfigMapCatalog(client kubernetes.Interface, namespace, name string) *configMapCatalog {
	if namespace == "" {
		namespace = "default"
	}
	if name == "" {
		name = "goods-catalog"
	}
	return &configMapCatalog{client: client, namespace: namespace, name: name}
}

func (c *configMapCatalog) Name() string {
	return fmt.Sprintf("configmap:%s/%s", c.namespace, c.name)
}

func (c *configMapCatalog) LoadDescriptions(ctx context.Context) (map[string]string, error) {
	cm, err := c.client.CoreV1().ConfigMaps(c.namespace).Get(ctx, c.name, metav1.GetOptions{})
	if err != nil {
		return nil, fmt.Errorf("get configmap %s/%s: %w", c.namespace, c.name, err)
	}

	descriptions := make(map[string]string, len(cm.Data))
	for code, desc := range cm.Data {
		descriptions[code] = desc
	}
	return descriptions, nil
}
