package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/elemental/internal/element"
	"github.com/udisondev/elemental/internal/logger"
)

// Engine holds all configuration of the elemental engine and its host
// process. Durations are in seconds and converted to ticks by Params.
type Engine struct {
	TicksPerSecond int `yaml:"ticks_per_second"`

	// Sampling cadences, in ticks.
	WetnessSampleTicks int `yaml:"wetness_sample_ticks"`
	SteamSampleTicks   int `yaml:"steam_sample_ticks"`

	// CompactIntervalSeconds drops idle status records. 0 disables.
	CompactIntervalSeconds float64 `yaml:"compact_interval_seconds"`

	Damage    DamageConfig    `yaml:"damage"`
	Restraint RestraintConfig `yaml:"restraint"`
	Wetness   WetnessConfig   `yaml:"wetness"`
	Scorched  ScorchedConfig  `yaml:"scorched"`
	Steam     SteamConfig     `yaml:"steam"`
	Nature    NatureConfig    `yaml:"nature"`
	Points    PointsConfig    `yaml:"points"`
	Immunity  ImmunityConfig  `yaml:"immunity"`

	// Forced attribute allocations keyed by entity type.
	Forced      map[string]ForcedConfig `yaml:"forced"`
	RandomRolls RandomRollConfig        `yaml:"random_rolls"`

	Logging  logger.Config  `yaml:"logging"`
	Database DatabaseConfig `yaml:"database"`
	Tracing  TracingConfig  `yaml:"tracing"`
}

// DamageConfig tunes the hit pipeline.
type DamageConfig struct {
	DamageMultiplier       float64 `yaml:"damage_multiplier"`
	ResistanceMultiplier   float64 `yaml:"resistance_multiplier"`
	StrengthPerHalfDamage  float64 `yaml:"strength_per_half_damage"`
	ResistPerHalfReduction float64 `yaml:"resist_per_half_reduction"`
	RestraintFloorRatio    float64 `yaml:"restraint_floor_ratio"`
}

// RestraintConfig lists the strong element pairs. Every strong pair implies
// the reverse weak pair.
type RestraintConfig struct {
	Strong           []StrongPair `yaml:"strong"`
	StrongMultiplier float64      `yaml:"strong_multiplier"`
	WeakMultiplier   float64      `yaml:"weak_multiplier"`
}

// StrongPair is one attacker > defender entry.
type StrongPair struct {
	Attacker element.Element `yaml:"attacker"`
	Defender element.Element `yaml:"defender"`
}

// WetnessConfig tunes the wetness machine and its damage interaction.
type WetnessConfig struct {
	MaxLevel             int     `yaml:"max_level"`
	ShallowRatio         float64 `yaml:"shallow_ratio"`
	RainGainSeconds      float64 `yaml:"rain_gain_seconds"`
	DecayBaseSeconds     float64 `yaml:"decay_base_seconds"`
	SplashIncrement      int     `yaml:"splash_increment"`
	PausedDisplaySeconds float64 `yaml:"paused_display_seconds"`

	FireReductionPerLevel float64 `yaml:"fire_reduction_per_level"`
	ChargedBonusPerLevel  float64 `yaml:"charged_bonus_per_level"`
}

// ScorchedConfig tunes the burning status.
type ScorchedConfig struct {
	BaseDamage          float64 `yaml:"base_damage"`
	ScalingStep         float64 `yaml:"scaling_step"`
	CooldownSeconds     float64 `yaml:"cooldown_seconds"`
	FireImmuneFactor    float64 `yaml:"fire_immune_factor"`
	NatureVulnerability float64 `yaml:"nature_vulnerability"`
	FireProtPerLevel    float64 `yaml:"fire_prot_per_level"`
	FireProtMax         float64 `yaml:"fire_prot_max"`
	GeneralProtPerLevel float64 `yaml:"general_prot_per_level"`
	GeneralProtMax      float64 `yaml:"general_prot_max"`
	ImmunityThreshold   int     `yaml:"immunity_threshold"`
}

// SteamConfig tunes the steam trigger, clouds and scald defense.
type SteamConfig struct {
	SelfDryingPenaltyRatio    float64 `yaml:"self_drying_penalty_ratio"`
	SelfDryingCooldownSeconds float64 `yaml:"self_drying_cooldown_seconds"`
	DryingThreshold           int     `yaml:"drying_threshold"`
	FireTriggerThreshold      int     `yaml:"fire_trigger_threshold"`
	FrostTriggerThreshold     int     `yaml:"frost_trigger_threshold"`
	CondensationStepCold      int     `yaml:"condensation_step_cold"`
	CondensationStepHot       int     `yaml:"condensation_step_hot"`

	HighBaseRadius     float64 `yaml:"high_base_radius"`
	HighRadiusPerLevel float64 `yaml:"high_radius_per_level"`
	LowRadius          float64 `yaml:"low_radius"`

	HighBaseDurationSeconds     float64 `yaml:"high_base_duration_seconds"`
	HighDurationPerLevelSeconds float64 `yaml:"high_duration_per_level_seconds"`
	LowBaseDurationSeconds      float64 `yaml:"low_base_duration_seconds"`
	LowDurationPerLevelSeconds  float64 `yaml:"low_duration_per_level_seconds"`

	ScaldBaseDamage          float64 `yaml:"scald_base_damage"`
	ScaldScalePerLevel       float64 `yaml:"scald_scale_per_level"`
	WeaknessMultiplier       float64 `yaml:"weakness_multiplier"`
	CondensationDelaySeconds float64 `yaml:"condensation_delay_seconds"`

	Defense ScaldDefenseConfig `yaml:"defense"`
}

// ScaldDefenseConfig tunes scald damage reduction.
type ScaldDefenseConfig struct {
	EPFPerLevel         float64 `yaml:"epf_per_level"`
	EPFCap              int     `yaml:"epf_cap"`
	FireProtPerLevel    float64 `yaml:"fire_prot_per_level"`
	FireProtMax         float64 `yaml:"fire_prot_max"`
	GeneralProtPerLevel float64 `yaml:"general_prot_per_level"`
	GeneralProtMax      float64 `yaml:"general_prot_max"`
	FloorRatio          float64 `yaml:"floor_ratio"`
	ImmunityThreshold   int     `yaml:"immunity_threshold"`
}

// NatureConfig tunes wildfire, parasitic drain and infection.
type NatureConfig struct {
	WildfireThreshold        int     `yaml:"wildfire_threshold"`
	WildfireDurationSeconds  float64 `yaml:"wildfire_duration_seconds"`
	WildfireCooldownSeconds  float64 `yaml:"wildfire_cooldown_seconds"`
	HealPerLayer             float64 `yaml:"heal_per_layer"`
	ParasiticCooldownSeconds float64 `yaml:"parasitic_cooldown_seconds"`
	InfectionBonus           float64 `yaml:"infection_bonus"`
}

// PointsConfig tunes attribute points.
type PointsConfig struct {
	// PerLevel is the points one enchant level is worth on an item.
	PerLevel int `yaml:"per_level"`
	// MaxTotal caps each element's aggregate points. 0 = no cap.
	MaxTotal int       `yaml:"max_total"`
	Step     int       `yaml:"step"`
	Tiers    []float64 `yaml:"tiers"`
}

// ImmunityConfig excludes entity types and dimensions from every reaction.
type ImmunityConfig struct {
	EntityTypes []string `yaml:"entity_types"`
	Dimensions  []string `yaml:"dimensions"`
}

// ForcedConfig is a declared attribute allocation. Points are raw specs:
// "", "none", "N" or "A-B".
type ForcedConfig struct {
	Attack        element.Element `yaml:"attack"`
	Enhance       element.Element `yaml:"enhance"`
	EnhancePoints string          `yaml:"enhance_points"`
	Resist        element.Element `yaml:"resist"`
	ResistPoints  string          `yaml:"resist_points"`
}

// RandomRollConfig is the procedural roll for spawning entities.
type RandomRollConfig struct {
	Chance        float64           `yaml:"chance"`
	Elements      []element.Element `yaml:"elements"`
	EnhancePoints string            `yaml:"enhance_points"`
	ResistPoints  string            `yaml:"resist_points"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled"`
	URL      string `yaml:"url"` // overrides the discrete fields when set
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`

	AutosaveSeconds float64 `yaml:"autosave_seconds"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// TracingConfig controls the observability sinks.
type TracingConfig struct {
	ServiceName string `yaml:"service_name"`
	// Endpoint is the OTLP/HTTP collector URL. Empty disables span export.
	Endpoint string `yaml:"endpoint"`
	// LogHits mirrors every hit and reaction into the debug log.
	LogHits bool `yaml:"log_hits"`
}

// DefaultEngine returns Engine config with sensible defaults.
func DefaultEngine() Engine {
	strong := element.DefaultStrongPairs()
	pairs := make([]StrongPair, 0, len(strong))
	for _, p := range strong {
		pairs = append(pairs, StrongPair{Attacker: p.Attacker, Defender: p.Defender})
	}

	return Engine{
		TicksPerSecond:         20,
		WetnessSampleTicks:     10,
		SteamSampleTicks:       5,
		CompactIntervalSeconds: 30,

		Damage: DamageConfig{
			DamageMultiplier:       1,
			ResistanceMultiplier:   1,
			StrengthPerHalfDamage:  10,
			ResistPerHalfReduction: 10,
			RestraintFloorRatio:    0.5,
		},
		Restraint: RestraintConfig{
			Strong:           pairs,
			StrongMultiplier: 1.5,
			WeakMultiplier:   0.75,
		},
		Wetness: WetnessConfig{
			MaxLevel:              5,
			ShallowRatio:          0.4,
			RainGainSeconds:       5,
			DecayBaseSeconds:      10,
			SplashIncrement:       2,
			PausedDisplaySeconds:  60,
			FireReductionPerLevel: 0.1,
			ChargedBonusPerLevel:  0.1,
		},
		Scorched: ScorchedConfig{
			BaseDamage:          1,
			ScalingStep:         20,
			CooldownSeconds:     5,
			FireImmuneFactor:    0.5,
			NatureVulnerability: 1.5,
			FireProtPerLevel:    0.05,
			FireProtMax:         0.4,
			GeneralProtPerLevel: 0.02,
			GeneralProtMax:      0.2,
			ImmunityThreshold:   500,
		},
		Steam: SteamConfig{
			SelfDryingPenaltyRatio:      0.3,
			SelfDryingCooldownSeconds:   3,
			DryingThreshold:             50,
			FireTriggerThreshold:        20,
			FrostTriggerThreshold:       20,
			CondensationStepCold:        40,
			CondensationStepHot:         40,
			HighBaseRadius:              2,
			HighRadiusPerLevel:          0.5,
			LowRadius:                   3,
			HighBaseDurationSeconds:     3,
			HighDurationPerLevelSeconds: 1,
			LowBaseDurationSeconds:      5,
			LowDurationPerLevelSeconds:  0.5,
			ScaldBaseDamage:             2,
			ScaldScalePerLevel:          0.25,
			WeaknessMultiplier:          1.5,
			CondensationDelaySeconds:    2,
			Defense: ScaldDefenseConfig{
				EPFPerLevel:         0.04,
				EPFCap:              20,
				FireProtPerLevel:    0.08,
				FireProtMax:         0.6,
				GeneralProtPerLevel: 0.04,
				GeneralProtMax:      0.3,
				FloorRatio:          0.25,
				ImmunityThreshold:   300,
			},
		},
		Nature: NatureConfig{
			WildfireThreshold:        60,
			WildfireDurationSeconds:  4,
			WildfireCooldownSeconds:  10,
			HealPerLayer:             3,
			ParasiticCooldownSeconds: 2,
			InfectionBonus:           0.25,
		},
		Points: PointsConfig{
			PerLevel: 10,
			MaxTotal: 500,
			Step:     10,
			Tiers:    []float64{0.40, 0.30, 0.18, 0.09, 0.03},
		},
		RandomRolls: RandomRollConfig{
			Chance:        0.1,
			Elements:      []element.Element{element.Fire, element.Frost, element.Thunder, element.Nature},
			EnhancePoints: "20-100",
			ResistPoints:  "20-100",
		},
		Logging: logger.DefaultConfig(),
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "elemental",
			Password:        "elemental",
			DBName:          "elemental",
			SSLMode:         "disable",
			AutosaveSeconds: 60,
		},
		Tracing: TracingConfig{
			ServiceName: "elemental",
		},
	}
}

// LoadEngine reads Engine config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadEngine(path string) (Engine, error) {
	cfg := DefaultEngine()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}
