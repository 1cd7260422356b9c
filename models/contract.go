package models

// Contract represents a contract summary as listed by the backend
type Contract struct {
	ContractID         int64  `json:"contract_id"`
	Status             string `json:"status"`
	CurrentVersionID   int64  `json:"current_version_id"`
	CurrentVersionName string `json:"current_version_name,omitempty"`
	VersionsCount      int    `json:"versions_count"`
	Carrier            string `json:"carrier"`
	Shipper            string `json:"shipper"`
	EffectiveDate      string `json:"effective_date"`
	EndDate            string `json:"end_date"`
	ContractFileURL    string `json:"contract_file_url"`
	ContractFileName   string `json:"contract_file_name"`
	CreatedAt          string `json:"created_at"`
	UpdatedAt          string `json:"updated_at"`
}

// Version represents one saved version of a contract
type Version struct {
	VersionID   int64  `json:"version_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
}

// ContractDetails is a contract together with its versions
type ContractDetails struct {
	Contract
	Versions []Version `json:"versions"`
}

// ContractListResponse is the backend envelope for GET /api/v1/contract/list
type ContractListResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		Contracts []Contract `json:"contracts"`
	} `json:"data"`
}

// UploadResponse is the backend envelope returned by the upload endpoint
type UploadResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// CreateVersionRequest represents the body sent to POST /api/v1/contract/{id}/version
// Example: {
//   "new_json": {...},
//   "version_name": "v3",
//   "version_description": "Updated contract details"
// }
type CreateVersionRequest struct {
	NewJSON            map[string]interface{} `json:"new_json"`
	VersionName        string                 `json:"version_name"`
	VersionDescription string                 `json:"version_description"`
}
