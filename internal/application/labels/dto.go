package labels

// QRSheetRequest selects the items and grid for a QR label sheet.
// An empty ItemIDs prints every active item.
type QRSheetRequest struct {
	ItemIDs     []int64 `json:"item_ids" binding:"omitempty,max=2000,dive,gt=0"`
	Columns     *int    `json:"columns" binding:"omitempty,min=1,max=6"`
	Rows        *int    `json:"rows" binding:"omitempty,min=1,max=10"`
	IncludeName *bool   `json:"include_name"`
	Archive     bool    `json:"archive"`
}

// QRSheetResult is the rendered sheet
type QRSheetResult struct {
	PDF        []byte
	Filename   string
	LabelCount int
	PageCount  int
	// ArchiveKey is set when the sheet was stored in object storage
	ArchiveKey string
}
