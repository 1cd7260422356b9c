package models

import "encoding/json"

// ContractVersion is the parsed content of one contract version
type ContractVersion struct {
	ContractID         int64                    `json:"contract_id"`
	VersionID          int64                    `json:"version_id"`
	VersionName        string                   `json:"version_name"`
	VersionDescription string                   `json:"version_description"`
	CurrentVersionID   int64                    `json:"current_version_id"`
	CurrentVersionName string                   `json:"current_version_name"`
	CreatedAt          string                   `json:"created_at"`
	UpdatedAt          string                   `json:"updated_at"`
	Status             string                   `json:"status"`
	ContractFileName   string                   `json:"contract_file_name"`
	ContractFileURL    string                   `json:"contract_file_url"`
	Carrier            string                   `json:"carrier"`
	Tables             map[string]ContractTable `json:"tables"`
}

// ContractTable is one titled table extracted from the contract document
type ContractTable struct {
	Title     string    `json:"title"`
	TableData TableData `json:"tableData"`
}

// TableData holds the headers and raw rows of a contract table.
// Row values are strings, string arrays or null, so they are kept raw.
type TableData struct {
	Headers []string                     `json:"headers"`
	Rows    []map[string]json.RawMessage `json:"rows"`
}

// ContractVersionResponse is the backend envelope for GET /api/v1/contract/{id}/version/{versionId}
type ContractVersionResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message,omitempty"`
	Data    *ContractVersion `json:"data"`
}
