package payments

import (
	"context"
	"fmt"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"

	"github.com/salonops/salon-manager/internal/config"
	"github.com/salonops/salon-manager/internal/models"
)

// Checkout creates Mercado Pago preferences for recorded transactions
// (online-store orders paid after the fact). Nil when no access token
// is configured.
type Checkout struct {
	prefs preference.Client
}

func NewCheckout(cfg *config.Config) (*Checkout, error) {
	if cfg.MercadoPagoToken == "" {
		return nil, nil
	}

	mpCfg, err := mpconfig.New(cfg.MercadoPagoToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}

	return &Checkout{
		prefs: preference.NewClient(mpCfg),
	}, nil
}

func (c *Checkout) Enabled() bool {
	return c != nil
}

type CheckoutLink struct {
	PreferenceID string `json:"preference_id"`
	InitPoint    string `json:"init_point"`
}

// CreateLink builds a payment preference mirroring the transaction's
// items; the transaction reference is carried as the external
// reference so the webhook side can reconcile.
func (c *Checkout) CreateLink(
	ctx context.Context,
	tr *models.Transaction,
) (*CheckoutLink, error) {

	items := make([]preference.ItemRequest, 0, len(tr.Items))
	for _, it := range tr.Items {
		items = append(items, preference.ItemRequest{
			Title:     it.Description,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}

	resp, err := c.prefs.Create(ctx, preference.Request{
		Items:             items,
		ExternalReference: tr.Reference,
	})
	if err != nil {
		return nil, fmt.Errorf("create preference: %w", err)
	}

	return &CheckoutLink{
		PreferenceID: resp.ID,
		InitPoint:    resp.InitPoint,
	}, nil
}
