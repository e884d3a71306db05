package itinerary

import (
	"fmt"

	"trip-decoder/internal/common"
	"trip-decoder/internal/cost"
	"trip-decoder/internal/diagnostic"
	"trip-decoder/internal/document"
	"trip-decoder/internal/transport"
)

func (as *Assembler) accommodation(a document.Accessor, diags *diagnostic.Diagnostics) (AccommodationDetails, error) {
	name, err := a.RequireString("name")
	if err != nil {
		return AccommodationDetails{}, err
	}

	amenities := a.Strings("amenities")
	if amenities == nil {
		amenities = []string{}
	}

	checkIn := a.Time("checkIn")
	checkOut := a.Time("checkOut")

	nights := a.Int("nights", 0)
	if nights == 0 && !checkIn.IsZero() && checkOut.After(checkIn) {
		nights = int(checkOut.Sub(checkIn).Hours() / 24)
	}

	return AccommodationDetails{
		Name:      name,
		Type:      a.String("type", ""),
		Location:  common.FirstNonBlank(a.String("location", ""), a.String("address", "")),
		CheckIn:   checkIn,
		CheckOut:  checkOut,
		Nights:    nights,
		Cost:      as.costOf(a, "cost", "totalCost", "price"),
		Amenities: amenities,
		Booking:   transport.DecodeBooking(a),
		Review:    extension(a, diags, review, "reviewInfo", "review"),
		Rental:    extension(a, diags, rental, "rentalInfo", "rental"),
	}, nil
}

// extension decodes an optional provider block. A block that is not a
// document is ignored with a diagnostic.
func extension[T any](a document.Accessor, diags *diagnostic.Diagnostics, decode func(document.Accessor) T,
	keys ...string,
) *T {
	key, ok := a.First(keys...)
	if !ok {
		return nil
	}

	block, ok := a.Doc(key)
	if !ok {
		raw, _ := a.Raw(key)
		diags.AddWarning(diagnostic.CodeMalformedBlock,
			fmt.Sprintf("%s ignored: expected document, got %s", key, document.KindOf(raw)), a.Sub(key))

		return nil
	}

	v := decode(block)

	return &v
}

func review(a document.Accessor) Review {
	return Review{
		Rating:      a.Float("rating", 0),
		ReviewCount: a.Int("reviewCount", a.Int("userRatingsTotal", 0)),
		Source:      a.String("source", ""),
		Highlights:  a.Strings("highlights"),
	}
}

func rental(a document.Accessor) Rental {
	return Rental{
		Host:         a.String("host", a.String("hostName", "")),
		ListingURL:   a.String("listingUrl", ""),
		PropertyType: a.String("propertyType", ""),
		Bedrooms:     a.Int("bedrooms", 0),
		Bathrooms:    a.Float("bathrooms", 0),
		MaxGuests:    a.Int("maxGuests", 0),
		HouseRules:   a.Strings("houseRules"),
	}
}

// costOf decodes the first present cost key.
func (as *Assembler) costOf(a document.Accessor, keys ...string) cost.FlexibleCost {
	key, ok := a.First(keys...)
	if !ok {
		return cost.FlexibleCost{}
	}

	raw, _ := a.Raw(key)

	return as.costs.Flexible(raw, a.Sub(key))
}
