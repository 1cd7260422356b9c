package models

// DriveFile represents a contract document stored in a Google Drive folder
type DriveFile struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	MimeType     string `json:"mime_type"`
	Size         int64  `json:"size"`
	ModifiedTime string `json:"modified_time"`
}

// ImportResult summarizes one Drive import run.
// Imported = uploaded to the backend, Skipped = a contract with the same file
// name already exists, Failed = download or upload error.
type ImportResult struct {
	FolderID string   `json:"folder_id"`
	Total    int      `json:"total"`
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Failed   int      `json:"failed"`
	Errors   []string `json:"errors,omitempty"`
}
