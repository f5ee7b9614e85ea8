package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/aromanza/gateway/utils"
)

// ContactRequest is the body of POST /contacto
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// ContactController forwards contact form messages to the shop inbox
type ContactController struct {
	Mailer utils.Mailer
	Inbox  string
}

// SendMessage validates the form and mails it
func (cc *ContactController) SendMessage(c *gin.Context) {
	utils.LogInfo("SendMessage called")
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, utils.ErrInvalidPayload, err.Error())
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)

	if err := utils.ValidateContactForm(req.Name, req.Email, req.Message); err != nil {
		utils.ValidationError(c, utils.ErrInvalidPayload, err)
		return
	}

	if cc.Mailer == nil || cc.Inbox == "" {
		utils.LogError("Contact form used but no mailer is configured")
		utils.Error(c, http.StatusServiceUnavailable, "El formulario de contacto no está disponible", nil)
		return
	}

	subject, body := utils.ContactEmail(req.Name, req.Email, req.Message)
	if err := cc.Mailer.Send(cc.Inbox, req.Email, subject, body); err != nil {
		utils.LogError("Failed to send contact message from %s: %v", req.Email, err)
		utils.InternalServerError(c, "No se pudo enviar el mensaje", nil)
		return
	}

	utils.LogInfo("Contact message from %s delivered", req.Email)
	utils.Success(c, utils.MsgContactSent, nil)
}
