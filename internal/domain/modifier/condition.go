package modifier

import (
	"encoding/json"
	"fmt"
	"time"
)

// Kind é o conjunto fechado de condições suportadas.
type Kind string

const (
	KindManual      Kind = "manual"
	KindCustomerTag Kind = "customer_tag"
	KindAgeRange    Kind = "age_range"
	KindFirstVisit  Kind = "first_visit"
)

const (
	defaultMinAge = 0
	defaultMaxAge = 150
)

// Condition é a variante já interpretada de condition_type + condition_value.
type Condition struct {
	Kind Kind

	// customer_tag
	Tag      string
	TagValue string

	// age_range
	MinAge int
	MaxAge int
}

// CustomerContext reúne o que se sabe do cliente no momento da avaliação.
// Qualquer campo ausente faz a condição correspondente não ser satisfeita.
type CustomerContext struct {
	Tags              map[string]string
	BirthDate         *time.Time
	ConfirmedBookings int
}

type conditionValue struct {
	Tag    string `json:"tag"`
	Value  string `json:"value"`
	MinAge *int   `json:"min_age"`
	MaxAge *int   `json:"max_age"`
}

// ParseCondition interpreta o par (condition_type, condition_value) vindo do
// banco. Tipo desconhecido é erro; o chamador decide o destino do modificador.
func ParseCondition(kind string, raw string) (Condition, error) {
	k := Kind(kind)

	switch k {
	case KindManual, KindFirstVisit:
		return Condition{Kind: k}, nil

	case KindCustomerTag:
		var v conditionValue
		if raw != "" {
			if err := json.Unmarshal([]byte(raw), &v); err != nil {
				return Condition{}, fmt.Errorf("parse condition value: %w", err)
			}
		}
		return Condition{Kind: k, Tag: v.Tag, TagValue: v.Value}, nil

	case KindAgeRange:
		v := conditionValue{}
		if raw != "" {
			if err := json.Unmarshal([]byte(raw), &v); err != nil {
				return Condition{}, fmt.Errorf("parse condition value: %w", err)
			}
		}
		cond := Condition{Kind: k, MinAge: defaultMinAge, MaxAge: defaultMaxAge}
		if v.MinAge != nil {
			cond.MinAge = *v.MinAge
		}
		if v.MaxAge != nil {
			cond.MaxAge = *v.MaxAge
		}
		return cond, nil
	}

	return Condition{}, fmt.Errorf("unknown condition type %q", kind)
}

// Satisfied avalia a condição contra o contexto do cliente.
// Pura e sem ordem: contexto ausente nunca vira erro, apenas "não satisfeita".
func (c Condition) Satisfied(ctx *CustomerContext, now time.Time) bool {
	switch c.Kind {
	case KindManual:
		// exige seleção explícita, nunca é satisfeita sozinha
		return false

	case KindCustomerTag:
		if ctx == nil || c.Tag == "" {
			return false
		}
		value, ok := ctx.Tags[c.Tag]
		if !ok {
			return false
		}
		return c.TagValue == "" || value == c.TagValue

	case KindAgeRange:
		if ctx == nil || ctx.BirthDate == nil {
			return false
		}
		age := yearsBetween(*ctx.BirthDate, now)
		return age >= c.MinAge && age <= c.MaxAge

	case KindFirstVisit:
		if ctx == nil {
			return false
		}
		return ctx.ConfirmedBookings == 0
	}

	return false
}

func yearsBetween(birth, now time.Time) int {
	years := now.Year() - birth.Year()
	anniversary := birth.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	return years
}
