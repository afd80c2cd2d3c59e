package blocks

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrUnknownType   = errors.New("unknown block type")
	ErrBlockNotFound = errors.New("block not found")
	ErrTypeMismatch  = errors.New("block data does not match block type")
	ErrOutOfRange    = errors.New("block index out of range")
)

// Block is one typed section of a page. Order is 1-based and owned by List.
type Block struct {
	ID              string
	Type            Type
	Order           int
	Data            Data
	Personalization *Personalization
}

// Personalization maps an industry id to an override payload shaped like the
// block's data. Keys outside the canonical industry list are kept but inert.
type Personalization struct {
	Enabled  bool                       `json:"enabled"`
	Variants map[string]json.RawMessage `json:"variants,omitempty"`
}

type wireBlock struct {
	ID              string           `json:"id"`
	Type            Type             `json:"type"`
	Order           int              `json:"order"`
	Data            json.RawMessage  `json:"data"`
	Personalization *json.RawMessage `json:"personalization,omitempty"`
}

func (b Block) MarshalJSON() ([]byte, error) {
	var data json.RawMessage
	switch d := b.Data.(type) {
	case nil:
		data = json.RawMessage("{}")
	case Unknown:
		data = d.Raw
		if len(data) == 0 {
			data = json.RawMessage("null")
		}
	default:
		raw, err := json.Marshal(d)
		if err != nil {
			return nil, fmt.Errorf("marshal %s data: %w", b.Type, err)
		}
		data = raw
	}
	out := struct {
		ID              string           `json:"id"`
		Type            Type             `json:"type"`
		Order           int              `json:"order"`
		Data            json.RawMessage  `json:"data"`
		Personalization *Personalization `json:"personalization,omitempty"`
	}{b.ID, b.Type, b.Order, data, b.Personalization}
	return json.Marshal(out)
}

// UnmarshalJSON is lenient: a malformed data payload yields the zero value for
// the type, and an unrecognised type yields Unknown.
func (b *Block) UnmarshalJSON(raw []byte) error {
	var w wireBlock
	if err := json.Unmarshal(raw, &w); err != nil {
		return err
	}
	b.ID = w.ID
	b.Type = w.Type
	b.Order = w.Order
	b.Data, _ = DecodeData(w.Type, w.Data)
	b.Personalization = nil
	if w.Personalization != nil {
		var p Personalization
		if err := json.Unmarshal(*w.Personalization, &p); err == nil {
			b.Personalization = &p
		}
	}
	return nil
}

// DecodeData decodes raw into the data struct for t. On a decode error the
// zero value is returned together with the error.
func DecodeData(t Type, raw []byte) (Data, error) {
	switch t {
	case TypeHero:
		return decodeAs[HeroData](raw)
	case TypeFeatureGrid:
		return decodeAs[FeatureGridData](raw)
	case TypeCTABanner:
		return decodeAs[CTABannerData](raw)
	case TypeCallout:
		return decodeAs[CalloutData](raw)
	case TypeMartechIntegrations:
		return decodeAs[MartechIntegrationsData](raw)
	case TypeContactForm:
		return decodeAs[ContactFormData](raw)
	case TypeTrustCards:
		return decodeAs[TrustCardsData](raw)
	case TypeSteps:
		return decodeAs[StepsData](raw)
	case TypeTwoColumn:
		return decodeAs[TwoColumnData](raw)
	default:
		return Unknown{Kind: t, Raw: append([]byte(nil), raw...)}, fmt.Errorf("%w: %q", ErrUnknownType, t)
	}
}

func decodeAs[T Data](raw []byte) (Data, error) {
	var v T
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return v, nil
	}
	if err := json.Unmarshal(trimmed, &v); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// ParseList decodes a stored block array. Items that cannot be decoded at all
// are dropped and reported through the joined error; the returned list is
// still usable.
func ParseList(raw []byte) ([]Block, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("decode block list: %w", err)
	}
	out := make([]Block, 0, len(items))
	var errs []error
	for i, item := range items {
		var b Block
		if err := json.Unmarshal(item, &b); err != nil {
			errs = append(errs, fmt.Errorf("block %d: %w", i, err))
			continue
		}
		out = append(out, b)
	}
	return out, errors.Join(errs...)
}
