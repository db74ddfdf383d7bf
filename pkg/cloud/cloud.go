// Package cloud maps Azure cloud environments to their Resource Manager
// endpoints and credential scopes.
package cloud

import "fmt"

// Cloud identifies one of the Azure deployment environments.
type Cloud string

const (
	// Public is the global Azure cloud.
	Public Cloud = "public"
	// China is the Azure China cloud operated by 21Vianet.
	China Cloud = "china"
	// USGovernment is the Azure US Government cloud.
	USGovernment Cloud = "usgovernment"
)

// ErrUnsupportedCloud is returned for cloud values outside the known set.
var ErrUnsupportedCloud = fmt.Errorf("unsupported cloud")

// Endpoints holds the Resource Manager endpoint and the credential scopes
// used to authenticate against it.
type Endpoints struct {
	ResourceManager  string   `json:"resource_manager"`
	CredentialScopes []string `json:"credential_scopes"`
}

// endpointTable is fixed at compile time and read-only.
var endpointTable = map[Cloud]Endpoints{
	Public: {
		ResourceManager:  "https://management.azure.com/",
		CredentialScopes: []string{"https://management.azure.com/.default"},
	},
	China: {
		ResourceManager:  "https://management.chinacloudapi.cn/",
		CredentialScopes: []string{"https://management.chinacloudapi.cn/.default"},
	},
	USGovernment: {
		ResourceManager:  "https://management.usgovcloudapi.net/",
		CredentialScopes: []string{"https://management.core.usgovcloudapi.net/.default"},
	},
}

// GetEndpoints returns the Resource Manager endpoints for the given
// cloud. Unknown values fail with ErrUnsupportedCloud.
func GetEndpoints(c Cloud) (Endpoints, error) {
	ep, ok := endpointTable[c]
	if !ok {
		return Endpoints{}, fmt.Errorf("%w: %q", ErrUnsupportedCloud, c)
	}
	// Copy the scope slice so callers cannot mutate the table.
	scopes := make([]string, len(ep.CredentialScopes))
	copy(scopes, ep.CredentialScopes)
	ep.CredentialScopes = scopes
	return ep, nil
}

// Parse converts a user-supplied cloud name into a Cloud value. Matching
// is exact on the lowercase names used by the CLI.
func Parse(s string) (Cloud, error) {
	switch Cloud(s) {
	case Public, China, USGovernment:
		return Cloud(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedCloud, s)
}
