package dto

type UploadRecordingResponse struct {
	Path string `json:"path"`
	Size int64  `json:"size"`
}
