package entity

// Role model so'rovidagi rol
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Part content bo'lagi: TextPart yoki FilePart
type Part interface {
	isPart()
}

// TextPart matnli bo'lak
type TextPart string

// FilePart yuklangan faylga havola
type FilePart struct {
	URI      string
	MIMEType string
}

// UnknownPart javobdagi boshqa turdagi bo'lak (function call va h.k.)
type UnknownPart struct {
	Kind string
}

func (TextPart) isPart()    {}
func (FilePart) isPart()    {}
func (UnknownPart) isPart() {}

// Content bitta xabarning model uchun tarjimasi
type Content struct {
	Role  Role
	Parts []Part
}

// Attachment Gemini fayl xotirasiga yuklangan fayl
type Attachment struct {
	URI         string
	ContentType string
}

// Part attachmentdan FilePart yasash
func (a Attachment) Part() FilePart {
	return FilePart{URI: a.URI, MIMEType: a.ContentType}
}

// MessageInfo TextPart ichidagi tuzilgan ma'lumot
type MessageInfo struct {
	UserName       string `json:"user_name"`
	UserID         int64  `json:"user_id"`
	MessageContent string `json:"message_content"`
	MessageID      int    `json:"message_id"`
}

// GenerateRequest Gemini ga yuboriladigan so'rov
type GenerateRequest struct {
	SystemInstruction string
	Contents          []Content
}

// GenerateResponse model javobi
type GenerateResponse struct {
	Parts []Part
}
