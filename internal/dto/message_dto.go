package dto

// Repair reasons carried on the index reconciler topic.
const (
	RepairReasonRelocated = "relocated"
	RepairReasonDeleted   = "deleted"
	RepairReasonMissing   = "missing"
)

// IndexRepairMessage asks the reconciler to bring an index entry back in
// line with the blob store after a move or delete that could not update
// the index inline.
type IndexRepairMessage struct {
	DropboxPath string `json:"dropbox_path"`
	NewPath     string `json:"new_path,omitempty"`
	Reason      string `json:"reason"`
}
