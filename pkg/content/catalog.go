package content

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"effectkit/pkg/cues"
	"effectkit/pkg/effects"
	"effectkit/pkg/magnitude"
	"effectkit/pkg/tags"
)

// Catalog is the fully-resolved result of loading one or more YAML
// documents: the tag registry they named and every effect template,
// indexed by name for Apply-time lookup.
type Catalog struct {
	Registry *tags.Registry
	Effects  map[string]*effects.EffectData
}

// EffectByName looks up a loaded template. It returns an error rather
// than a bool so misconfigured content fails loudly at the call site
// instead of silently applying nothing.
func (c *Catalog) EffectByName(name string) (*effects.EffectData, error) {
	d, ok := c.Effects[name]
	if !ok {
		return nil, fmt.Errorf("content: effect %q not found in catalog", name)
	}
	return d, nil
}

// document is the top-level shape of one catalog YAML file. Tags is the
// flat list of every dotted-path tag key the file's effects (or a host's
// runtime tag grants) may reference; Effects is an ordered list, each
// named by its own Name field, matching spec.md §6's external interface.
type document struct {
	Tags    []string    `yaml:"tags"`
	Effects []effectDoc `yaml:"effects"`
}

type effectDoc struct {
	Name       string        `yaml:"name"`
	Modifiers  []modifierDoc `yaml:"modifiers"`
	Duration   durationDoc   `yaml:"duration"`
	Periodic   *periodicDoc  `yaml:"periodic"`
	Stacking   *stackingDoc  `yaml:"stacking"`
	Cues       []cueDoc      `yaml:"cues"`
	TagRequirements *tagRequirementsDoc `yaml:"tag_requirements"`
	GrantsTags []string      `yaml:"grants_tags"`

	SnapshotLevel                       bool `yaml:"snapshot_level"`
	RequireModifierSuccessToTriggerCue  bool `yaml:"require_modifier_success_to_trigger_cue"`
	SuppressStackingCues                bool `yaml:"suppress_stacking_cues"`
}

type modifierDoc struct {
	Attribute string       `yaml:"attribute"`
	Operation string       `yaml:"operation"` // only "flat_bonus" is valid; field exists for forward-compatibility (spec.md §3)
	Magnitude magnitudeDoc `yaml:"magnitude"`
}

// magnitudeDoc is a discriminated union over magnitude.Spec's closed
// variant set. Kind selects which of the remaining fields apply; the
// two open-extension variants (CustomCalculatorSpec, CustomExecution)
// are host Go code and have no YAML representation, per spec.md §4.3's
// distinction between data-declared and code-declared magnitude
// sources.
type magnitudeDoc struct {
	Kind string `yaml:"kind"` // "scalable", "attribute_based", "set_by_caller"

	// scalable
	Base  float64    `yaml:"base"`
	Curve []curveKey `yaml:"curve"`

	// attribute_based
	CaptureAttribute string     `yaml:"capture_attribute"`
	CaptureFrom      string     `yaml:"capture_from"`   // "source" or "target"
	CaptureChannel   string     `yaml:"capture_channel"` // "current","base","modifier","valid_modifier","overflow","min","max"
	Snapshot         bool       `yaml:"snapshot"`
	Coefficient      float64    `yaml:"coefficient"`
	PreAdd           float64    `yaml:"pre_add"`
	PostAdd          float64    `yaml:"post_add"`

	// set_by_caller
	Tag string `yaml:"tag"`
}

type curveKey struct {
	Level float64 `yaml:"level"`
	Value float64 `yaml:"value"`
}

type durationDoc struct {
	Kind  string     `yaml:"kind"` // "instant", "infinite", "has_duration"
	Base  float64    `yaml:"base"`
	Curve []curveKey `yaml:"curve"`
}

type periodicDoc struct {
	Period               float64    `yaml:"period"`
	Curve                []curveKey `yaml:"curve"`
	ExecuteOnApplication bool       `yaml:"execute_on_application"`
	// "never", "reset_period", "execute_and_reset_period"
	InhibitionRemovedPolicy string `yaml:"inhibition_removed_policy"`
}

type stackingDoc struct {
	Policy                   string `yaml:"policy"`                       // "aggregate_by_target", "aggregate_by_source"
	LevelPolicy              string `yaml:"level_policy"`                 // "aggregate_levels", "segregate_levels"
	MagnitudePolicy          string `yaml:"magnitude_policy"`             // "sum", "dont_stack"
	OverflowPolicy           string `yaml:"overflow_policy"`              // "allow_application", "deny_application"
	ExpirationPolicy         string `yaml:"expiration_policy"`            // "remove_single_stack_and_refresh_duration", "clear_entire_stack", "refresh_duration"
	LevelDenialPolicy        []string `yaml:"level_denial_policy"`        // any of "lower","equal","higher"
	LevelOverridePolicy      []string `yaml:"level_override_policy"`
	LevelOverrideStackCountPolicy string `yaml:"level_override_stack_count_policy"` // "reset_stacks", "increase_stacks"
	ApplicationRefreshPolicy string `yaml:"application_refresh_policy"` // "never_refresh", "refresh_on_successful_application"
	StackLimit               int    `yaml:"stack_limit"`
	InitialStack             int    `yaml:"initial_stack"`
}

type cueDoc struct {
	Tags               []string `yaml:"tags"`
	MinValue           float64  `yaml:"min_value"`
	MaxValue           float64  `yaml:"max_value"`
	MagnitudeType      string   `yaml:"magnitude_type"`
	MagnitudeAttribute string   `yaml:"magnitude_attribute"`
}

type tagRequirementsDoc struct {
	ApplicationAll []string `yaml:"application_all"`
	OngoingAll     []string `yaml:"ongoing_all"`
	RemovalAny     []string `yaml:"removal_any"`
}

// Load reads every *.yaml / *.yml file in dir (non-recursively),
// merging their tag lists into one Registry and their effects into one
// Catalog. Each file read goes through a retry.Retrier built from
// retry.FileSystemRetryConfig so a
// transient I/O error on a content volume does not abort the whole
// load.
func Load(dir string) (*Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("content: reading %s: %w", dir, err)
	}

	var docs []document
	var tagKeys []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		doc, err := loadDocument(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
		tagKeys = append(tagKeys, doc.Tags...)
	}

	registry, err := tags.NewRegistry(tagKeys)
	if err != nil {
		return nil, fmt.Errorf("content: building tag registry: %w", err)
	}

	cat := &Catalog{Registry: registry, Effects: make(map[string]*effects.EffectData)}
	for _, doc := range docs {
		for _, ed := range doc.Effects {
			if ed.Name == "" {
				return nil, fmt.Errorf("content: effect entry missing required 'name' field")
			}
			data, err := ed.build(registry)
			if err != nil {
				return nil, fmt.Errorf("content: effect %q: %w", ed.Name, err)
			}
			if err := data.Validate(); err != nil {
				return nil, fmt.Errorf("content: effect %q: %w", ed.Name, err)
			}
			cat.Effects[ed.Name] = data
		}
	}
	return cat, nil
}

func (ed effectDoc) build(reg *tags.Registry) (*effects.EffectData, error) {
	data := &effects.EffectData{
		Name:                                ed.Name,
		SnapshotLevel:                       ed.SnapshotLevel,
		RequireModifierSuccessToTriggerCue:  ed.RequireModifierSuccessToTriggerCue,
		SuppressStackingCues:                ed.SuppressStackingCues,
	}

	for _, m := range ed.Modifiers {
		spec, err := m.Magnitude.build(reg)
		if err != nil {
			return nil, fmt.Errorf("modifier %s: %w", m.Attribute, err)
		}
		op, err := m.operation()
		if err != nil {
			return nil, err
		}
		data.Modifiers = append(data.Modifiers, effects.Modifier{
			Attribute: m.Attribute,
			Operation: op,
			Magnitude: spec,
		})
	}

	duration, err := ed.Duration.build()
	if err != nil {
		return nil, err
	}
	data.Duration = duration

	if ed.Periodic != nil {
		data.Periodic = ed.Periodic.build()
	}

	if ed.Stacking != nil {
		sd, err := ed.Stacking.build()
		if err != nil {
			return nil, err
		}
		data.Stacking = sd
	}

	for _, c := range ed.Cues {
		cd, err := c.build(reg)
		if err != nil {
			return nil, err
		}
		data.Cues = append(data.Cues, cd)
	}

	if ed.TagRequirements != nil {
		ttr, err := ed.TagRequirements.build(reg)
		if err != nil {
			return nil, err
		}
		data.Components = append(data.Components, ttr)
	}

	if len(ed.GrantsTags) > 0 {
		grant, err := buildContainer(reg, ed.GrantsTags)
		if err != nil {
			return nil, err
		}
		data.Components = append(data.Components, &effects.ModifierTagsComponent{TagsToAdd: grant})
	}

	return data, nil
}

func (m modifierDoc) operation() (effects.Operation, error) {
	switch m.Operation {
	case "", "flat_bonus":
		return effects.FlatBonus, nil
	default:
		return 0, fmt.Errorf("unknown operation %q", m.Operation)
	}
}

func (m magnitudeDoc) build(reg *tags.Registry) (magnitude.Spec, error) {
	switch m.Kind {
	case "", "scalable":
		return magnitude.ScalableFloatSpec{Value: magnitude.ScalableFloat{
			Base:  m.Base,
			Curve: buildCurve(m.Curve),
		}}, nil
	case "attribute_based":
		from, err := parseCaptureSource(m.CaptureFrom)
		if err != nil {
			return nil, err
		}
		channel, err := parseChannel(m.CaptureChannel)
		if err != nil {
			return nil, err
		}
		return magnitude.AttributeBasedSpec{
			Capture: magnitude.CaptureDefinition{
				Attribute: m.CaptureAttribute,
				From:      from,
				Channel:   channel,
				Snapshot:  m.Snapshot,
			},
			Coefficient: magnitude.ScalableFloat{Base: nonZeroOr(m.Coefficient, 1)},
			PreAdd:      magnitude.ScalableFloat{Base: m.PreAdd},
			PostAdd:     magnitude.ScalableFloat{Base: m.PostAdd},
			Curve:       buildCurve(m.Curve),
		}, nil
	case "set_by_caller":
		t, err := reg.RequestTag(m.Tag)
		if err != nil {
			return nil, err
		}
		return magnitude.SetByCallerSpec{Tag: t, Curve: buildCurve(m.Curve)}, nil
	default:
		return nil, fmt.Errorf("unknown magnitude kind %q", m.Kind)
	}
}

func nonZeroOr(v, fallback float64) float64 {
	if v == 0 {
		return fallback
	}
	return v
}

func buildCurve(keys []curveKey) *magnitude.Curve {
	if len(keys) == 0 {
		return nil
	}
	cks := make([]magnitude.CurveKey, len(keys))
	for i, k := range keys {
		cks[i] = magnitude.CurveKey{Level: k.Level, Value: k.Value}
	}
	return magnitude.NewCurve(cks...)
}

func parseCaptureSource(s string) (magnitude.CaptureSource, error) {
	switch s {
	case "", "target":
		return magnitude.TargetEntity, nil
	case "source":
		return magnitude.SourceEntity, nil
	default:
		return 0, fmt.Errorf("unknown capture_from %q", s)
	}
}

func parseChannel(s string) (magnitude.Channel, error) {
	switch s {
	case "", "current":
		return magnitude.ChannelCurrent, nil
	case "base":
		return magnitude.ChannelBase, nil
	case "modifier":
		return magnitude.ChannelModifier, nil
	case "valid_modifier":
		return magnitude.ChannelValidModifier, nil
	case "overflow":
		return magnitude.ChannelOverflow, nil
	case "min":
		return magnitude.ChannelMin, nil
	case "max":
		return magnitude.ChannelMax, nil
	default:
		return 0, fmt.Errorf("unknown capture_channel %q", s)
	}
}

func (d durationDoc) build() (effects.DurationData, error) {
	switch d.Kind {
	case "", "instant":
		return effects.DurationData{Kind: effects.DurationInstant}, nil
	case "infinite":
		return effects.DurationData{Kind: effects.DurationInfinite}, nil
	case "has_duration":
		return effects.DurationData{
			Kind:     effects.DurationHasDuration,
			Duration: magnitude.ScalableFloat{Base: d.Base, Curve: buildCurve(d.Curve)},
		}, nil
	default:
		return effects.DurationData{}, fmt.Errorf("unknown duration kind %q", d.Kind)
	}
}

func (p periodicDoc) build() *effects.PeriodicData {
	policy := effects.NeverReset
	switch p.InhibitionRemovedPolicy {
	case "reset_period":
		policy = effects.ResetPeriod
	case "execute_and_reset_period":
		policy = effects.ExecuteAndResetPeriod
	}
	return &effects.PeriodicData{
		Period:                  magnitude.ScalableFloat{Base: p.Period, Curve: buildCurve(p.Curve)},
		ExecuteOnApplication:    p.ExecuteOnApplication,
		InhibitionRemovedPolicy: policy,
	}
}

func (s stackingDoc) build() (*effects.StackingData, error) {
	levelDenial, err := parseLevelComparison(s.LevelDenialPolicy)
	if err != nil {
		return nil, err
	}
	levelOverride, err := parseLevelComparison(s.LevelOverridePolicy)
	if err != nil {
		return nil, err
	}

	sd := &effects.StackingData{
		LevelDenialPolicy:   levelDenial,
		LevelOverridePolicy: levelOverride,
		StackLimit:          magnitude.ScalableInt{Base: s.StackLimit},
		InitialStack:        magnitude.ScalableInt{Base: maxInt(s.InitialStack, 1)},
	}

	switch s.Policy {
	case "", "aggregate_by_target":
		sd.StackPolicy = effects.AggregateByTarget
	case "aggregate_by_source":
		sd.StackPolicy = effects.AggregateBySource
	default:
		return nil, fmt.Errorf("unknown stacking policy %q", s.Policy)
	}

	switch s.LevelPolicy {
	case "", "aggregate_levels":
		sd.StackLevelPolicy = effects.AggregateLevels
	case "segregate_levels":
		sd.StackLevelPolicy = effects.SegregateLevels
	default:
		return nil, fmt.Errorf("unknown level_policy %q", s.LevelPolicy)
	}

	switch s.MagnitudePolicy {
	case "", "sum":
		sd.StackMagnitudePolicy = effects.Sum
	case "dont_stack":
		sd.StackMagnitudePolicy = effects.DontStack
	default:
		return nil, fmt.Errorf("unknown magnitude_policy %q", s.MagnitudePolicy)
	}

	switch s.OverflowPolicy {
	case "", "allow_application":
		sd.StackOverflowPolicy = effects.AllowApplication
	case "deny_application":
		sd.StackOverflowPolicy = effects.DenyApplication
	default:
		return nil, fmt.Errorf("unknown overflow_policy %q", s.OverflowPolicy)
	}

	switch s.ExpirationPolicy {
	case "", "remove_single_stack_and_refresh_duration":
		sd.StackExpirationPolicy = effects.RemoveSingleStackAndRefreshDuration
	case "clear_entire_stack":
		sd.StackExpirationPolicy = effects.ClearEntireStack
	case "refresh_duration":
		sd.StackExpirationPolicy = effects.RefreshDuration
	default:
		return nil, fmt.Errorf("unknown expiration_policy %q", s.ExpirationPolicy)
	}

	switch s.LevelOverrideStackCountPolicy {
	case "", "reset_stacks":
		sd.LevelOverrideStackCountPolicy = effects.ResetStacks
	case "increase_stacks":
		sd.LevelOverrideStackCountPolicy = effects.IncreaseStacks
	default:
		return nil, fmt.Errorf("unknown level_override_stack_count_policy %q", s.LevelOverrideStackCountPolicy)
	}

	switch s.ApplicationRefreshPolicy {
	case "", "never_refresh":
		sd.ApplicationRefreshPolicy = effects.NeverRefresh
	case "refresh_on_successful_application":
		sd.ApplicationRefreshPolicy = effects.RefreshOnSuccessfulApplication
	default:
		return nil, fmt.Errorf("unknown application_refresh_policy %q", s.ApplicationRefreshPolicy)
	}

	return sd, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func parseLevelComparison(flags []string) (effects.LevelComparison, error) {
	var lc effects.LevelComparison
	for _, f := range flags {
		switch f {
		case "lower":
			lc |= effects.LevelLower
		case "equal":
			lc |= effects.LevelEqual
		case "higher":
			lc |= effects.LevelHigher
		default:
			return 0, fmt.Errorf("unknown level comparison flag %q", f)
		}
	}
	return lc, nil
}

func (c cueDoc) build(reg *tags.Registry) (cues.CueData, error) {
	container, err := buildContainer(reg, c.Tags)
	if err != nil {
		return cues.CueData{}, err
	}
	mt, err := parseMagnitudeType(c.MagnitudeType)
	if err != nil {
		return cues.CueData{}, err
	}
	return cues.CueData{
		Tags:               container,
		MinValue:           c.MinValue,
		MaxValue:           c.MaxValue,
		MagnitudeType:      mt,
		MagnitudeAttribute: c.MagnitudeAttribute,
	}, nil
}

func parseMagnitudeType(s string) (cues.MagnitudeType, error) {
	switch s {
	case "", "attribute_value_change":
		return cues.AttributeValueChange, nil
	case "attribute_current_value":
		return cues.AttributeCurrentValue, nil
	case "attribute_base_value":
		return cues.AttributeBaseValue, nil
	case "attribute_modifier":
		return cues.AttributeModifier, nil
	case "attribute_valid_modifier":
		return cues.AttributeValidModifier, nil
	case "attribute_overflow":
		return cues.AttributeOverflow, nil
	case "attribute_min":
		return cues.AttributeMin, nil
	case "attribute_max":
		return cues.AttributeMax, nil
	case "attribute_magnitude_evaluated_up_to_channel":
		return cues.AttributeMagnitudeEvaluatedUpToChannel, nil
	case "effect_level":
		return cues.EffectLevel, nil
	case "stack_count":
		return cues.StackCount, nil
	default:
		return 0, fmt.Errorf("unknown magnitude_type %q", s)
	}
}

func (t tagRequirementsDoc) build(reg *tags.Registry) (*effects.TargetTagRequirements, error) {
	ttr := &effects.TargetTagRequirements{}
	if len(t.ApplicationAll) > 0 {
		c, err := buildContainer(reg, t.ApplicationAll)
		if err != nil {
			return nil, err
		}
		ttr.Application = tags.MatchAllTags(c)
	}
	if len(t.OngoingAll) > 0 {
		c, err := buildContainer(reg, t.OngoingAll)
		if err != nil {
			return nil, err
		}
		ttr.Ongoing = tags.MatchAllTags(c)
	}
	if len(t.RemovalAny) > 0 {
		c, err := buildContainer(reg, t.RemovalAny)
		if err != nil {
			return nil, err
		}
		ttr.Removal = tags.MatchAnyTags(c)
	}
	return ttr, nil
}

func buildContainer(reg *tags.Registry, keys []string) (tags.Container, error) {
	c := tags.Container{}
	for _, k := range keys {
		t, err := reg.RequestTag(k)
		if err != nil {
			return tags.Container{}, err
		}
		c.Add(t)
	}
	return c, nil
}
