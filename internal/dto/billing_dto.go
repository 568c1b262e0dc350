package dto

type CheckoutRequest struct {
	UserId string `json:"user_id" validate:"required,uuid"`
	Plan   string `json:"plan" validate:"required"`
}

type CheckoutResponse struct {
	Ok  bool   `json:"ok"`
	Url string `json:"url"`
}
