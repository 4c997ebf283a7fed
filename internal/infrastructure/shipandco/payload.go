package shipandco

import (
	"github.com/99minutos/crossborder-pricing/internal/core/domain"
)

// customsContentMerchandise is the only customs content type we declare.
const customsContentMerchandise = "merchandise"

// originAddress is the fixed sender: the seller's warehouse in Japan.
var originAddress = address{
	FullName: "Crossborder Pricing Warehouse",
	Company:  "Crossborder Pricing",
	Email:    "shipping@example.jp",
	Phone:    "0312345678",
	Country:  "JP",
	Zip:      "1000005",
	Province: "Tokyo",
	City:     "Chiyoda-ku",
	Address1: "1-1 Marunouchi",
}

type address struct {
	FullName string `json:"full_name,omitempty"`
	Company  string `json:"company,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Country  string `json:"country"`
	Zip      string `json:"zip"`
	Province string `json:"province,omitempty"`
	City     string `json:"city,omitempty"`
	Address1 string `json:"address1,omitempty"`
	Address2 string `json:"address2,omitempty"`
}

type product struct {
	Name          string  `json:"name"`
	Quantity      int     `json:"quantity"`
	Price         float64 `json:"price"`
	OriginCountry string  `json:"origin_country"`
}

type parcel struct {
	Weight float64 `json:"weight"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Depth  float64 `json:"depth"`
}

type customs struct {
	ContentType string `json:"content_type"`
}

type rateRequest struct {
	FromAddress address   `json:"from_address"`
	ToAddress   address   `json:"to_address"`
	Products    []product `json:"products"`
	Parcels     []parcel  `json:"parcels"`
	Customs     customs   `json:"customs"`
}

// buildRateRequest maps a quote request onto the API payload. Only the
// receiver and the parcel vary between calls.
func buildRateRequest(req domain.RateQuoteRequest) rateRequest {
	return rateRequest{
		FromAddress: originAddress,
		ToAddress: address{
			Country: req.Country,
			Zip:     req.PostalCode,
		},
		Products: []product{{
			Name:          "Merchandise",
			Quantity:      1,
			Price:         1000,
			OriginCountry: "JP",
		}},
		Parcels: []parcel{{
			Weight: req.WeightG,
			Width:  req.WidthCm,
			Height: req.HeightCm,
			Depth:  req.DepthCm,
		}},
		Customs: customs{ContentType: customsContentMerchandise},
	}
}
