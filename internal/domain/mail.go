package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type WelcomeMailData struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type ResetPasswordMailData struct {
	FullName   string `json:"fullName"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"` // minutes
}

type ChangeEmailMailData struct {
	FullName   string `json:"fullName"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"` // minutes
}

type AssignmentCreatedMailData struct {
	FullName      string `json:"fullName"`
	PositionTitle string `json:"positionTitle"`
	ClientName    string `json:"clientName"`
	StartDate     string `json:"startDate"`
	EndDate       string `json:"endDate"`
}
