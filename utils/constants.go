package utils

// Application constants
const (
	// Application name
	AppName = "Aromanza"

	// API version
	APIVersion = "v1"

	// Default listen address
	DefaultAddr = "0.0.0.0:8080"

	// Page size the catalog uses when none is given
	DefaultPageSize = 12

	// Maximum page size forwarded to the backend
	MaxPageSize = 100

	// Route the guards send anonymous visitors to
	LoginPath = "/login"

	// Session cookie name
	SessionName = "aromanza"

	// Minimum password length accepted on reset
	MinPasswordLength = 8

	// Maximum length of a contact message
	MaxContactMessageLength = 2000
)

// Error messages
const (
	ErrInvalidCredentials = "Credenciales inválidas"
	ErrNotAuthenticated   = "No autenticado"
	ErrAdminRequired      = "Se requiere rol de administrador"
	ErrInvalidProductID   = "ID de producto inválido"
	ErrInvalidID          = "ID inválido"
	ErrInvalidPayload     = "Datos inválidos"
	ErrEmptyCart          = "El carrito está vacío"
	ErrBackendUnavailable = "No se pudo conectar con el servidor"
	ErrInternalServer     = "Error interno del servidor"
	ErrIncompleteReset    = "Enlace de restablecimiento incompleto"
)

// Success messages
const (
	MsgLoginSuccess    = "Sesión iniciada"
	MsgLogoutSuccess   = "Sesión cerrada"
	MsgRegisterSuccess = "Registro exitoso"
	MsgPasswordReset   = "Contraseña restablecida con éxito"
	MsgForgotPassword  = "Si el correo electrónico está registrado, recibirás un enlace de restablecimiento. Revisa tu bandeja de entrada."
	MsgContactSent     = "Mensaje enviado correctamente"

	MsgCreateSuccess = "Creado correctamente"
	MsgUpdateSuccess = "Actualizado correctamente"
	MsgDeleteSuccess = "Eliminado correctamente"
)
