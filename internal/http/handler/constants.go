package handler

const (
	jsonKeyDetail = "detail"

	serviceName    = "Subnet Calculator API"
	serviceVersion = "1.0.0"

	statusHealthy = "healthy"
	statusReady   = "ready"
	statusAlive   = "alive"

	tokenTypeBearer = "bearer"

	formKeyUsername = "username"
	formKeyPassword = "password"

	msgInvalidRequestBody = "Invalid request body"
)
