package request

// RevealRequest is the request body for revealing a cell
type RevealRequest struct {
	Word string `json:"word"`
}
