package core

import (
	"fmt"

	"github.com/Mgobeaalcoba/payflow-service/internal/model"
	"github.com/Mgobeaalcoba/payflow-service/internal/ports"
)

type GatewayRegistry struct {
	gateways map[model.PaymentProvider]ports.IPaymentGateway
}

func NewGatewayRegistry() *GatewayRegistry {
	return &GatewayRegistry{
		gateways: make(map[model.PaymentProvider]ports.IPaymentGateway),
	}
}

func (r *GatewayRegistry) Register(provider model.PaymentProvider, gateway ports.IPaymentGateway) {
	r.gateways[provider] = gateway
}

func (r *GatewayRegistry) Get(provider model.PaymentProvider) (ports.IPaymentGateway, error) {
	if g, exists := r.gateways[provider]; exists {
		return g, nil
	}
	return nil, fmt.Errorf("gateway %s not configured", provider)
}

type ChannelRegistry struct {
	channels map[model.ChannelKind]ports.INotificationChannel
}

func NewChannelRegistry() *ChannelRegistry {
	return &ChannelRegistry{
		channels: make(map[model.ChannelKind]ports.INotificationChannel),
	}
}

func (r *ChannelRegistry) Register(channel ports.INotificationChannel) {
	r.channels[channel.Kind()] = channel
}

func (r *ChannelRegistry) Get(kind model.ChannelKind) (ports.INotificationChannel, error) {
	if c, exists := r.channels[kind]; exists {
		return c, nil
	}
	return nil, fmt.Errorf("notification channel %s not configured", kind)
}
