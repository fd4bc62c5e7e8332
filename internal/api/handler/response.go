package handler

// Shared success envelopes. Errors never pass through these; the central
// error handler renders its own envelope.

type dataResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

type listResponse struct {
	Success bool        `json:"success"`
	Count   int         `json:"count"`
	Data    interface{} `json:"data"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
