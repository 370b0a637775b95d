package domain

// CommentEntry is one free-text message left on the dashboard
type CommentEntry struct {
	RowID   RowID  `json:"_row_number,omitempty"`
	Date    string `json:"date"`
	Owner   string `json:"owner"`
	Message string `json:"message"`
}

// Validate ensures all required fields are present before the comment is stored
func (c *CommentEntry) Validate() error {
	if c.Date == "" {
		return MissingField("date")
	}
	if c.Owner == "" {
		return MissingField("owner")
	}
	if c.Message == "" {
		return MissingField("message")
	}
	return nil
}

// CommentHeaders is the header row written when the Comments table is created
var CommentHeaders = []string{"Date", "Owner", "Comments"}
