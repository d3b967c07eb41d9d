// Package resolver extracts canonical attribute values from catalog components whose raw fields vary by
// source. It is the only code that looks inside a component's open attribute and specs maps.
package resolver

import (
	"strings"

	"github.com/acexeno/BuildIT-PC-sub000/internal/models"
	"github.com/acexeno/BuildIT-PC-sub000/internal/utils"
)

// Attribute is a logical attribute name.
type Attribute string

const (
	Socket               Attribute = "socket"
	Brand                Attribute = "brand"
	RAMType              Attribute = "ramType"
	FormFactor           Attribute = "formFactor"
	SupportedFormFactors Attribute = "supportedFormFactors"
	PSUSupport           Attribute = "psuSupport"
	Wattage              Attribute = "wattage"
	Capacity             Attribute = "capacity"
	Interface            Attribute = "interface"
	StorageSupport       Attribute = "storageSupport"
	Length               Attribute = "length"
	MaxGPULength         Attribute = "maxGpuLength"
	Height               Attribute = "height"
	MaxCoolerHeight      Attribute = "maxCoolerHeight"
	Slots                Attribute = "slots"
	Modules              Attribute = "modules"
	TDP                  Attribute = "tdp"
	Speed                Attribute = "speed"
	MaxMemorySpeed       Attribute = "maxMemorySpeed"
	Chipset              Attribute = "chipset"
	SupportedSockets     Attribute = "supportedSockets"
)

// Vocabularies for the attributes resolved by substring search.
var (
	SocketVocabulary = []string{"am4", "am5", "lga1200", "lga1700"}
	BrandVocabulary  = []string{"amd", "intel"}
)

// Mode selects how a rule walks its field paths.
type Mode int

const (
	// Direct checks each key at the top level, then under specs, and returns the first present value as-is.
	Direct Mode = iota
	// Scan walks every key at the top level, then every key under specs, and returns the first vocabulary
	// token found as a substring of a field's lower-cased text.
	Scan
)

// Rule describes how one attribute is found.
type Rule struct {
	Keys       []string
	Vocabulary []string
	Mode       Mode
	// Accept, when set, filters candidate values; rejected values fall through to the next key.
	Accept func(text string) bool
}

func isRAMGeneration(text string) bool {
	return strings.HasPrefix(utils.NormalizeToken(text), "ddr")
}

// Rules is the ordered field table per attribute.
var Rules = map[Attribute]Rule{
	Socket:               {Keys: []string{"socket", "type", "model", "name"}, Vocabulary: SocketVocabulary, Mode: Scan},
	Brand:                {Keys: []string{"brand", "socket", "type", "model", "name"}, Vocabulary: BrandVocabulary, Mode: Scan},
	RAMType:              {Keys: []string{"ram_type", "memory_type", "type"}, Accept: isRAMGeneration},
	FormFactor:           {Keys: []string{"form_factor", "formFactor"}},
	SupportedFormFactors: {Keys: []string{"motherboard_support", "supported_form_factors", "form_factor", "formFactor"}},
	PSUSupport:           {Keys: []string{"psu_support", "psu_form_factor", "power_supply"}},
	Wattage:              {Keys: []string{"wattage"}},
	Capacity:             {Keys: []string{"capacity"}},
	Interface:            {Keys: []string{"interface"}},
	StorageSupport:       {Keys: []string{"storage_support", "storage_interfaces", "storage"}},
	Length:               {Keys: []string{"length"}},
	MaxGPULength:         {Keys: []string{"max_gpu_length", "gpu_clearance"}},
	Height:               {Keys: []string{"height"}},
	MaxCoolerHeight:      {Keys: []string{"max_cooler_height", "cooler_clearance"}},
	Slots:                {Keys: []string{"ram_slots", "memory_slots", "slots"}},
	Modules:              {Keys: []string{"modules", "kit"}},
	TDP:                  {Keys: []string{"tdp"}},
	Speed:                {Keys: []string{"speed"}},
	MaxMemorySpeed:       {Keys: []string{"max_memory_speed", "memory_speed", "max_ram_speed"}},
	Chipset:              {Keys: []string{"chipset"}},
	SupportedSockets:     {Keys: []string{"socket_support", "supported_sockets", "sockets", "socket"}},
}

// Value is a resolved attribute.
type Value struct {
	Raw  any
	Text string
}

// Number parses the value as a number ("650 W" -> 650).
func (v Value) Number() (float64, bool) {
	return utils.ParseNumber(v.Raw)
}

// Int is Number truncated to an int.
func (v Value) Int() (int, bool) {
	f, ok := v.Number()
	return int(f), ok
}

// Token is the normalized text of the value.
func (v Value) Token() string {
	return utils.NormalizeToken(v.Text)
}

// Resolve returns the canonical value of attr for c. The boolean is false when no field carries the
// attribute; callers treat that as "indeterminate". Unknown attributes fall back to a direct lookup of the
// attribute name itself.
func Resolve(c *models.Component, attr Attribute) (Value, bool) {
	if c == nil {
		return Value{}, false
	}
	rule, ok := Rules[attr]
	if !ok {
		rule = Rule{Keys: []string{string(attr)}}
	}
	return rule.Resolve(c)
}

// Resolve applies the rule to c.
func (r Rule) Resolve(c *models.Component) (Value, bool) {
	if r.Mode == Scan {
		return r.scan(c)
	}
	return r.direct(c)
}

func (r Rule) direct(c *models.Component) (Value, bool) {
	for _, key := range r.Keys {
		for _, lookup := range []func(string) (any, bool){c.Field, c.Spec} {
			raw, ok := lookup(key)
			if !ok {
				continue
			}
			text := strings.TrimSpace(utils.Text(raw))
			if text == "" || (r.Accept != nil && !r.Accept(text)) {
				continue
			}
			return Value{Raw: raw, Text: text}, true
		}
	}
	return Value{}, false
}

func (r Rule) scan(c *models.Component) (Value, bool) {
	for _, lookup := range []func(string) (any, bool){c.Field, c.Spec} {
		for _, key := range r.Keys {
			raw, ok := lookup(key)
			if !ok {
				continue
			}
			if token := MatchVocabulary(utils.Text(raw), r.Vocabulary); token != "" {
				return Value{Raw: token, Text: token}, true
			}
		}
	}
	return Value{}, false
}

// MatchVocabulary returns the first vocabulary token contained in text after normalization, or "".
func MatchVocabulary(text string, vocabulary []string) string {
	norm := utils.NormalizeToken(text)
	if norm == "" {
		return ""
	}
	for _, token := range vocabulary {
		if strings.Contains(norm, token) {
			return token
		}
	}
	return ""
}

// Text resolves attr and returns its trimmed text, or "".
func Text(c *models.Component, attr Attribute) string {
	v, ok := Resolve(c, attr)
	if !ok {
		return ""
	}
	return v.Text
}

// Number resolves attr as a number.
func Number(c *models.Component, attr Attribute) (float64, bool) {
	v, ok := Resolve(c, attr)
	if !ok {
		return 0, false
	}
	return v.Number()
}
