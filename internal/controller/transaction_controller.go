package controller

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/Mgobeaalcoba/payflow-service/internal/model"
	"github.com/Mgobeaalcoba/payflow-service/internal/ports"
	"github.com/Mgobeaalcoba/payflow-service/internal/service"
	"github.com/Mgobeaalcoba/payflow-service/pkg/utils"
)

type TransactionController struct {
	pipeline *service.TransactionPipeline
}

func NewTransactionController(pipeline *service.TransactionPipeline) *TransactionController {
	return &TransactionController{pipeline: pipeline}
}

type transactionRequest struct {
	Customer model.Customer       `json:"customer"`
	Payment  model.PaymentRequest `json:"payment"`
}

type transactionResponse struct {
	Charge            *model.ChargeResult `json:"charge"`
	Channel           model.ChannelKind   `json:"channel"`
	NotificationError string              `json:"notification_error,omitempty"`
	LogError          string              `json:"log_error,omitempty"`
}

func (c *TransactionController) ProcessTransaction(w http.ResponseWriter, r *http.Request) {
	var provider model.PaymentProvider = model.PaymentProvider(r.PathValue("provider"))

	// Create base context from the HTTP request
	ctx := r.Context()

	// Add transaction-specific timeout
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	outcome, err := c.pipeline.ProcessTransaction(ctx, provider, req.Customer, req.Payment)
	if err != nil {
		var validationErr *ports.ValidationError
		if errors.As(err, &validationErr) {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		var gatewayErr *ports.GatewayError
		if errors.As(err, &gatewayErr) {
			utils.RespondWithError(w, http.StatusBadGateway, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := transactionResponse{
		Charge:  outcome.Charge,
		Channel: outcome.Channel,
	}
	if outcome.NotificationErr != nil {
		resp.NotificationError = outcome.NotificationErr.Error()
	}
	if outcome.LogErr != nil {
		resp.LogError = outcome.LogErr.Error()
	}

	utils.RespondWithJSON(w, http.StatusOK, resp)
}

func (c *TransactionController) GetTransaction(w http.ResponseWriter, r *http.Request) {
	var chargeID string = r.PathValue("id")

	ctx := r.Context()
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rec, err := c.pipeline.FindTransaction(ctx, chargeID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if rec == nil {
		utils.RespondWithError(w, http.StatusNotFound, "transaction not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, rec)
}

func (c *TransactionController) ParseWebhook(w http.ResponseWriter, r *http.Request) {
	var provider model.PaymentProvider = model.PaymentProvider(r.PathValue("provider"))

	ctx := r.Context()
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rawBody, err := io.ReadAll(r.Body)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid body")
		return
	}

	event, err := c.pipeline.HandleWebhook(ctx, provider, rawBody, r.Header)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	log.Printf("webhook--Event: %+v", event)
	utils.RespondWithJSON(w, http.StatusOK, event)
}

func (c *TransactionController) GetHealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"status": "OK",
	}

	utils.RespondWithJSON(w, http.StatusOK, response)
}
