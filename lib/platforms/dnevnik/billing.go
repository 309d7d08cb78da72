package dnevnik

import (
	"context"
	"strconv"
	"time"

	"dnevnik-sdk/lib/timezone"
)

type BillDetail struct {
	Time   ClockTime `json:"time"`
	Name   string    `json:"name"`
	Place  string    `json:"place"`
	Amount int64     `json:"amount"`
	Type   string    `json:"type"`
}

type Bill struct {
	Date    IsoDate      `json:"date"`
	Amount  int64        `json:"amount"`
	Details []BillDetail `json:"details"`
}

type Billing struct {
	Balance int64  `json:"balance"`
	Payload []Bill `json:"payload"`
}

// GetBilling lists cafeteria charges for a date range. The contract id
// comes from Profile.IsppAccount.
func (c *Client) GetBilling(ctx context.Context, from, to time.Time, contractID int64) (Billing, error) {
	ctx, span := tracer.Start(ctx, "dnevnik:GetBilling")
	defer span.End()

	headers, err := c.coreHeaders(ctx)
	if err != nil {
		return Billing{}, recordFailure(span, err, "missing credentials")
	}

	var billing Billing
	err = c.get(ctx, c.core+"/mobile/api/billing", headers, map[string]string{
		"from":        timezone.FormatDay(from),
		"to":          timezone.FormatDay(to),
		"contract_id": strconv.FormatInt(contractID, 10),
	}, &billing)
	if err != nil {
		return Billing{}, recordFailure(span, err, "failed to fetch billing")
	}
	return billing, nil
}

type MenuItem struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	FullName    string `json:"full_name"`
	Price       int64  `json:"price"`
	IsAvailable bool   `json:"available_now"`
}

type menuEnvelope struct {
	Menu []MenuItem `json:"menu"`
}

// GetMenu lists the buffet menu for a day.
func (c *Client) GetMenu(ctx context.Context, date time.Time) ([]MenuItem, error) {
	ctx, span := tracer.Start(ctx, "dnevnik:GetMenu")
	defer span.End()

	headers, err := c.mobileHeaders(ctx)
	if err != nil {
		return nil, recordFailure(span, err, "missing credentials")
	}

	var envelope menuEnvelope
	err = c.get(ctx, c.family+"/api/family/mobile/v1/menu/buffet/", headers, map[string]string{
		"date": timezone.FormatDay(date),
	}, &envelope)
	if err != nil {
		return nil, recordFailure(span, err, "failed to fetch menu")
	}
	return envelope.Menu, nil
}
