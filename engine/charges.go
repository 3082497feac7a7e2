package engine

import (
	"frontdesk-backend/models"
)

// The selection of additional charges on a booking behaves as a set keyed
// by service ID, exposed as an ordered list. All operations return a new
// slice and leave the input untouched.

// AddCharge applies a catalog service to the selection, snapshotting its
// current price. Adding a service that is already selected replaces the
// existing entry in place instead of appending a duplicate.
func AddCharge(existing []models.AdditionalCharge, svc models.Service, requestedQty int) ([]models.AdditionalCharge, error) {
	if svc.BasePrice < 0 {
		return nil, ErrNegativeAmount
	}
	if requestedQty < 0 {
		return nil, ErrInvalidQuantity
	}

	qty := requestedQty
	if qty == 0 {
		qty = 1
	}
	if !svc.PerItem {
		// Flat fee: quantity is pinned to 1 regardless of input.
		qty = 1
	}

	entry := models.AdditionalCharge{
		ServiceID:   svc.ID,
		ServiceName: svc.ServiceName,
		PerItem:     svc.PerItem,
		Quantity:    qty,
		UnitPrice:   svc.BasePrice,
	}
	entry.TotalAmount = ChargeTotal(entry)

	out := make([]models.AdditionalCharge, len(existing))
	copy(out, existing)

	for i := range out {
		if out[i].ServiceID == svc.ID {
			entry.ID = out[i].ID
			entry.BookingID = out[i].BookingID
			out[i] = entry
			return out, nil
		}
	}
	return append(out, entry), nil
}

// RemoveCharge drops the entry for serviceID, preserving the order of the
// rest. Removing an absent service is a no-op.
func RemoveCharge(existing []models.AdditionalCharge, serviceID uint) []models.AdditionalCharge {
	out := make([]models.AdditionalCharge, 0, len(existing))
	for _, c := range existing {
		if c.ServiceID != serviceID {
			out = append(out, c)
		}
	}
	return out
}

// SetQuantity changes the quantity of a selected per-item service. For a
// flat-fee service the quantity stays pinned to 1.
func SetQuantity(existing []models.AdditionalCharge, serviceID uint, quantity int) ([]models.AdditionalCharge, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	out := make([]models.AdditionalCharge, len(existing))
	copy(out, existing)

	for i := range out {
		if out[i].ServiceID != serviceID {
			continue
		}
		if out[i].PerItem {
			out[i].Quantity = quantity
		} else {
			out[i].Quantity = 1
		}
		out[i].TotalAmount = ChargeTotal(out[i])
		return out, nil
	}
	return nil, ErrServiceNotSelected
}

// ChargeTotal recomputes a line total from its canonical inputs. The
// stored TotalAmount column is never trusted at read time.
func ChargeTotal(c models.AdditionalCharge) float64 {
	qty := c.Quantity
	if qty < 1 {
		qty = 1
	}
	return round2(float64(qty) * c.UnitPrice)
}

// ChargesTotal sums the recomputed line totals; 0 for an empty selection.
func ChargesTotal(charges []models.AdditionalCharge) float64 {
	var total float64
	for _, c := range charges {
		total += ChargeTotal(c)
	}
	return round2(total)
}
