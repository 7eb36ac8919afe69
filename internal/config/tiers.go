package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// StatusTier is one qualitative bucket of daily screen time. MaxMinutes is
// the inclusive upper bound of the bucket; nil means unbounded (the last
// tier). The zero-minutes "no data" tier is identified by Tier == TierNoData
// rather than a bound.
type StatusTier struct {
	Tier       string `mapstructure:"tier" json:"tier"`
	Label      string `mapstructure:"label" json:"label"`
	Emoji      string `mapstructure:"emoji" json:"emoji"`
	Color      string `mapstructure:"color" json:"color"`
	Badge      string `mapstructure:"badge" json:"badge"`
	MaxMinutes *int   `mapstructure:"max_minutes" json:"max_minutes,omitempty"`
}

const TierNoData = "no_data"

// DefaultStatusTiers returns the built-in buckets: two hours or less is
// winning, six hours or more is an emergency.
func DefaultStatusTiers() []StatusTier {
	return []StatusTier{
		{Tier: TierNoData, Label: "No Data", Emoji: "📱", Color: "text-gray-500", Badge: "bg-gray-100 text-gray-600"},
		{Tier: "crushing_it", Label: "Crushing It", Emoji: "👑", Color: "text-yellow-600", Badge: "bg-yellow-100 text-yellow-700", MaxMinutes: intPtr(120)},
		{Tier: "on_track", Label: "On Track", Emoji: "✨", Color: "text-blue-600", Badge: "bg-blue-100 text-blue-700", MaxMinutes: intPtr(240)},
		{Tier: "struggling", Label: "Struggling", Emoji: "😅", Color: "text-orange-600", Badge: "bg-orange-100 text-orange-700", MaxMinutes: intPtr(360)},
		{Tier: "sos", Label: "SOS", Emoji: "🚨", Color: "text-red-600", Badge: "bg-red-100 text-red-700"},
	}
}

func intPtr(v int) *int { return &v }

// TiersHolder exposes the active tier table and hot-reloads it when the
// backing file changes.
type TiersHolder struct {
	current atomic.Value // holds []StatusTier
}

// NewTiersHolder reads the optional tiers file (viper, yml) and watches it
// for changes. A missing file means the defaults stay active; an invalid
// file is rejected and the previous table is kept.
func NewTiersHolder(cfg Config) (*TiersHolder, error) {
	h := &TiersHolder{}
	h.current.Store(DefaultStatusTiers())

	v := viper.New()
	v.SetConfigName("tiers")
	v.SetConfigType("yml")
	if path := strings.TrimSpace(cfg.TiersConfigPath); path != "" {
		v.AddConfigPath(path)
	}
	v.AddConfigPath("/etc/screenclash")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		return h, nil
	}

	if err := h.loadFrom(v); err != nil {
		return nil, err
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		if err := h.loadFrom(v); err != nil {
			log.Printf("tiers config reload rejected (%s): %v", e.Name, err)
		}
	})
	v.WatchConfig()

	return h, nil
}

// NewStaticTiersHolder returns a holder pinned to the given table, or to the
// defaults when tiers is nil. No file is read or watched.
func NewStaticTiersHolder(tiers []StatusTier) *TiersHolder {
	if tiers == nil {
		tiers = DefaultStatusTiers()
	}
	h := &TiersHolder{}
	h.current.Store(tiers)
	return h
}

// Tiers returns the active tier table.
func (h *TiersHolder) Tiers() []StatusTier {
	return h.current.Load().([]StatusTier)
}

func (h *TiersHolder) loadFrom(v *viper.Viper) error {
	var tiers []StatusTier
	if err := v.UnmarshalKey("tiers", &tiers); err != nil {
		return err
	}
	if err := ValidateTiers(tiers); err != nil {
		return err
	}
	h.current.Store(tiers)
	return nil
}

// ValidateTiers checks the structural rules: a leading no-data tier, bounds
// strictly ascending, and exactly one unbounded tier at the end.
func ValidateTiers(tiers []StatusTier) error {
	if len(tiers) < 2 {
		return errors.New("tiers: at least a no-data and one bounded tier required")
	}
	if tiers[0].Tier != TierNoData {
		return errors.New("tiers: first tier must be " + TierNoData)
	}

	prev := 0
	for i, tier := range tiers[1:] {
		last := i == len(tiers)-2
		if strings.TrimSpace(tier.Tier) == "" || strings.TrimSpace(tier.Label) == "" {
			return errors.New("tiers: tier and label are required")
		}
		if last {
			if tier.MaxMinutes != nil {
				return errors.New("tiers: last tier must be unbounded")
			}
			continue
		}
		if tier.MaxMinutes == nil {
			return errors.New("tiers: only the last tier may be unbounded")
		}
		if *tier.MaxMinutes <= prev {
			return errors.New("tiers: max_minutes must be strictly ascending")
		}
		prev = *tier.MaxMinutes
	}
	return nil
}
