package charpage

import (
	"context"
	"strconv"
)

// Summary is the compact equipment listing served by the char-data TCP
// service. Field names are part of that service's JSON contract.
type Summary struct {
	Name   string `json:"name"`
	Level  string `json:"level"`
	Class  string `json:"class"`
	Helm   string `json:"helm"`
	Armor  string `json:"armor"`
	Cape   string `json:"cape"`
	Weapon string `json:"weapon"`
	Pet    string `json:"pet"`
}

// SummaryFromFlashVars maps the raw parameter block to a Summary. Missing
// values fall back to "N/A" (or the queried name for the name field).
func SummaryFromFlashVars(fv *FlashVars, queriedName string) Summary {
	s := Summary{
		Name:   orDefault(fv.Name, queriedName),
		Level:  "N/A",
		Class:  orDefault(fv.ClassName, "N/A"),
		Helm:   orDefault(fv.HelmName, "N/A"),
		Armor:  orDefault(fv.ArmorName, "N/A"),
		Cape:   orDefault(fv.CapeName, "N/A"),
		Weapon: orDefault(fv.WeaponName, "N/A"),
		Pet:    orDefault(fv.PetName, "N/A"),
	}
	if fv.Level > 0 {
		s.Level = strconv.Itoa(fv.Level)
	}
	return s
}

// LoadSummary fetches and parses the page, then reduces it to a Summary.
func (c *Client) LoadSummary(ctx context.Context, username string) (Summary, error) {
	page, err := c.FetchPage(ctx, username)
	if err != nil {
		return Summary{}, err
	}
	fv, err := ParseFlashVars(page)
	if err != nil {
		return Summary{}, err
	}
	return SummaryFromFlashVars(fv, username), nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
