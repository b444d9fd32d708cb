package requests

type LoginRequest struct {
	Code string `json:"code" validate:"required"`
	Role string `json:"role" validate:"required,oneof=patient doctor"`
}

type CalendarConsentRequest struct {
	ConsentCode string `json:"consent_code" validate:"required"`
}
