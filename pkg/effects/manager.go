package effects

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"effectkit/pkg/attributes"
	"effectkit/pkg/cues"
	"effectkit/pkg/entity"
	"effectkit/pkg/magnitude"
	"effectkit/pkg/tags"
)

// ErrApplicationDenied is returned by Apply when a CanApplyHook refuses
// the effect, or a stacking policy refuses an overflowing or
// level-denied reapplication. No handle, no cues, no side effects.
var ErrApplicationDenied = errors.New("effects: application denied")

// NotActiveError is returned by any Manager method taking a handle once
// the underlying ActiveEffect has been removed or expired.
type NotActiveError struct{ Handle ActiveEffectHandle }

func (e *NotActiveError) Error() string {
	return fmt.Sprintf("effects: handle %s is not active", e.Handle.id)
}

// stackKey identifies one stacking group: an EffectData template plus,
// for StackPolicy.AggregateBySource, the originating source's identity.
type stackKey struct {
	data      *EffectData
	sourceKey string
}

// Manager is the live effects engine bound to a single target entity.
// One Manager owns every ActiveEffect applied to that target; a source
// entity is supplied per call to Apply rather than stored on the
// Manager, since the same Manager receives effects from many sources.
type Manager struct {
	target entity.Entity
	cues   *cues.Manager
	log    *logrus.Entry

	active map[uuid.UUID]*ActiveEffect
	stacks map[stackKey][]*ActiveEffect
}

// NewManager constructs a Manager bound to target. cueManager may be
// nil, in which case cue dispatch is a no-op.
func NewManager(target entity.Entity, cueManager *cues.Manager) *Manager {
	return &Manager{
		target: target,
		cues:   cueManager,
		log:    logrus.WithField("component", "effects.Manager"),
		active: make(map[uuid.UUID]*ActiveEffect),
		stacks: make(map[stackKey][]*ActiveEffect),
	}
}

// GrantedTags unions the ModifierTagsComponent tags of every active,
// non-inhibited effect on the target. A host's concrete Entity
// implementation composes this into its own ModifierTags() method,
// since Entity itself carries no reference back to its Manager
// (pkg/entity's doc comment explains why).
func (m *Manager) GrantedTags() tags.Container {
	out := tags.NewContainer()
	for _, ae := range m.active {
		if ae.removed || ae.inhibited {
			continue
		}
		for _, c := range ae.Effect.Data.Components {
			if mt, ok := c.(*ModifierTagsComponent); ok {
				out = out.Union(mt.TagsToAdd)
			}
		}
	}
	return out
}

// Active returns the ActiveEffect behind handle, if it is still live.
func (m *Manager) Active(handle ActiveEffectHandle) (*ActiveEffect, bool) {
	ae, ok := m.active[handle.id]
	return ae, ok
}

// Apply runs an effect's full application pipeline: the CanApply gate,
// duration-kind dispatch (Instant executes and vanishes; Infinite and
// HasDuration become a stacked or fresh ActiveEffect), standing
// modifier commitment, live-capture subscription, component and cue
// notification. It returns a nil handle with no error for an Instant
// effect, since nothing persists to reference.
func (m *Manager) Apply(effect *Effect, source entity.Entity) (*ActiveEffectHandle, error) {
	if err := effect.Data.Validate(); err != nil {
		m.log.WithError(err).WithField("effect", effect.Data.Name).Warn("effect failed validation")
		return nil, err
	}
	for _, c := range effect.Data.Components {
		if hook, ok := c.(CanApplyHook); ok && !hook.CanApply(m.target, effect) {
			m.log.WithFields(logrus.Fields{"effect": effect.Data.Name, "component": hook.ComponentName()}).Debug("application denied")
			return nil, ErrApplicationDenied
		}
	}

	if effect.Data.Duration.Kind == DurationInstant {
		ctx := m.evalContext(effect, source, nil)
		writes, err := m.evaluateWrites(effect, ctx)
		if err != nil {
			return nil, err
		}
		if err := m.commitWrites(writes, m.target, source); err != nil {
			return nil, err
		}
		m.runOnApply(effect, nil)
		m.dispatchCue(effect, cues.OnExecute, nil, attributeSet(writes))
		return nil, nil
	}

	ae, isNew, refreshed, err := m.resolveStack(effect, source)
	if err != nil {
		return nil, err
	}

	if isNew {
		ae = newActiveEffect(effect, m.initialStackCount(effect), source)
		m.active[ae.Handle.id] = ae
		m.addToStackGroup(effect, ae)

		landed := map[string]bool{}
		if effect.Data.Periodic == nil {
			if err := m.applyStandingModifiers(ae, source); err != nil {
				return nil, err
			}
			landed = modifierStateAttributeSet(ae.modifiers)
		}

		// Apply cues fire before execute cues for the same effect
		// (spec.md §4.6), so the periodic execute-on-application branch
		// below must run after this dispatch, not before it.
		m.runOnApply(effect, ae)
		m.dispatchCue(effect, cues.OnApply, ae, landed)

		if effect.Data.Periodic != nil && effect.Data.Periodic.ExecuteOnApplication {
			if err := m.executePeriod(ae, source); err != nil {
				return nil, err
			}
		}
		return &ae.Handle, nil
	}

	// Reapplication onto an existing stack.
	ae.source = source
	landed := map[string]bool{}
	if effect.Data.Periodic == nil {
		if err := m.recomputeStandingModifiers(ae, source); err != nil {
			return nil, err
		}
		landed = modifierStateAttributeSet(ae.modifiers)
	}
	if refreshed && effect.Data.Stacking.ApplicationRefreshPolicy == RefreshOnSuccessfulApplication {
		m.refreshDuration(ae)
	}
	if !effect.Data.SuppressStackingCues {
		m.dispatchCue(ae.Effect, cues.OnApply, ae, landed)
	}
	return &ae.Handle, nil
}

// Unapply removes an active effect: it reverses every standing
// modifier delta, cancels live-capture subscriptions, runs
// OnRemoveHook components, and dispatches the OnRemove cue.
func (m *Manager) Unapply(handle ActiveEffectHandle) error {
	ae, ok := m.active[handle.id]
	if !ok {
		return &NotActiveError{Handle: handle}
	}
	return m.remove(ae, m.target)
}

func (m *Manager) remove(ae *ActiveEffect, target entity.Entity) error {
	if ae.removed {
		return nil
	}
	ae.removed = true
	landed := modifierStateAttributeSet(ae.modifiers)
	if err := m.removeStandingModifiers(ae); err != nil {
		return err
	}
	for _, c := range ae.Effect.Data.Components {
		if hook, ok := c.(OnRemoveHook); ok {
			hook.OnRemove(target, ae.Effect)
		}
	}
	m.dispatchCue(ae.Effect, cues.OnRemove, ae, landed)
	delete(m.active, ae.Handle.id)
	m.removeFromStackGroup(ae)
	return nil
}

// Update advances every active effect by dt seconds: it evaluates the
// removal and ongoing (inhibition) tag gates, runs periodic execution,
// and counts down duration, expiring effects per their
// StackExpirationPolicy.
func (m *Manager) Update(dt float64) error {
	for _, ae := range snapshotActive(m.active) {
		if ae.removed {
			continue
		}
		if ttr := ae.Effect.tagRequirements(); ttr != nil && ttr.Removal != nil {
			if ttr.Removal.Matches(combinedTags(m.target)) {
				if err := m.remove(ae, m.target); err != nil {
					return err
				}
				continue
			}
		}

		if err := m.updateInhibition(ae); err != nil {
			return err
		}

		if ae.Effect.Data.Periodic != nil && !ae.inhibited {
			period := ae.Effect.Data.Periodic.Period.Eval(float64(ae.level))
			if period > 0 {
				ae.periodAccumulator += dt
				for ae.periodAccumulator >= period {
					ae.periodAccumulator -= period
					if err := m.executePeriod(ae, ae.source); err != nil {
						return err
					}
				}
			}
		}

		if ae.Effect.Data.Duration.Kind != DurationHasDuration {
			continue
		}
		ae.remainingDuration -= dt
		if ae.remainingDuration > 0 {
			continue
		}
		if err := m.expire(ae); err != nil {
			return err
		}
	}
	return nil
}

func (m *Manager) updateInhibition(ae *ActiveEffect) error {
	ongoing := true
	if ttr := ae.Effect.tagRequirements(); ttr != nil {
		ongoing = ttr.Ongoing(m.target)
	}
	for _, c := range ae.Effect.Data.Components {
		if hook, ok := c.(OngoingHook); ok {
			if !hook.Ongoing(m.target) {
				ongoing = false
			}
		}
	}

	ae.wasInhibited = ae.inhibited
	ae.inhibited = !ongoing
	if ae.wasInhibited == ae.inhibited {
		return nil
	}

	if ae.Effect.Data.Periodic == nil {
		if ae.inhibited {
			m.withdrawStandingModifiers(ae)
		} else {
			m.restoreStandingModifiers(ae)
		}
		return nil
	}

	if !ae.inhibited {
		switch ae.Effect.Data.Periodic.InhibitionRemovedPolicy {
		case ResetPeriod:
			ae.periodAccumulator = 0
		case ExecuteAndResetPeriod:
			ae.periodAccumulator = 0
			return m.executePeriod(ae, ae.source)
		}
	}
	return nil
}

// withdrawStandingModifiers pulls a persistent effect's modifier
// contributions off the target while it is inhibited, without
// forgetting what each contributed so restoreStandingModifiers can put
// it back exactly.
func (m *Manager) withdrawStandingModifiers(ae *ActiveEffect) {
	for i, s := range ae.modifiers {
		if s.capture != nil && s.capture.unsubscribe != nil {
			s.capture.unsubscribe()
			ae.modifiers[i].capture = nil
		}
		_ = m.target.Attributes().RemoveFlatModifier(s.attribute, s.appliedDelta)
	}
}

// restoreStandingModifiers reinstates a persistent effect's modifier
// contributions once its ongoing tag requirement is satisfied again.
func (m *Manager) restoreStandingModifiers(ae *ActiveEffect) {
	for _, s := range ae.modifiers {
		_ = m.target.Attributes().AddFlatModifier(s.attribute, s.appliedDelta)
	}
	m.subscribeLiveCaptures(ae, ae.source)
}

func (m *Manager) expire(ae *ActiveEffect) error {
	sd := ae.Effect.Data.Stacking
	if sd == nil {
		return m.remove(ae, m.target)
	}
	switch sd.StackExpirationPolicy {
	case ClearEntireStack:
		return m.remove(ae, m.target)
	case RemoveSingleStackAndRefreshDuration:
		ae.stackCount--
		if ae.stackCount <= 0 {
			return m.remove(ae, m.target)
		}
		if err := m.recomputeStandingModifiers(ae, ae.source); err != nil {
			return err
		}
		m.refreshDuration(ae)
		return nil
	default: // RefreshDuration: periodic-only, keeps ticking until explicitly removed.
		m.refreshDuration(ae)
		return nil
	}
}

func (m *Manager) refreshDuration(ae *ActiveEffect) {
	if ae.Effect.Data.Duration.Kind == DurationHasDuration {
		ae.remainingDuration = ae.Effect.Data.Duration.Duration.Eval(float64(ae.level))
	}
}

// --- stacking ---------------------------------------------------------

func (m *Manager) initialStackCount(effect *Effect) int {
	if effect.Data.Stacking == nil {
		return 1
	}
	n := effect.Data.Stacking.InitialStack.Eval(float64(effect.Level()))
	if n < 1 {
		n = 1
	}
	return n
}

func (m *Manager) stackKeyFor(effect *Effect) stackKey {
	k := stackKey{data: effect.Data}
	if effect.Data.Stacking != nil && effect.Data.Stacking.StackPolicy == AggregateBySource {
		k.sourceKey = effect.Ownership.SourceKey
	}
	return k
}

func (m *Manager) addToStackGroup(effect *Effect, ae *ActiveEffect) {
	if effect.Data.Stacking == nil {
		return
	}
	k := m.stackKeyFor(effect)
	m.stacks[k] = append(m.stacks[k], ae)
}

func (m *Manager) removeFromStackGroup(ae *ActiveEffect) {
	if ae.Effect.Data.Stacking == nil {
		return
	}
	k := m.stackKeyFor(ae.Effect)
	group := m.stacks[k]
	for i, e := range group {
		if e == ae {
			m.stacks[k] = append(group[:i], group[i+1:]...)
			return
		}
	}
}

// resolveStack decides whether effect merges into an existing
// ActiveEffect of the same stacking group or starts a fresh one. It
// returns the group's target ActiveEffect (nil if isNew), whether a
// brand new ActiveEffect should be created, and whether this was a
// successful reapplication onto an existing stack (for
// ApplicationRefreshPolicy).
func (m *Manager) resolveStack(effect *Effect, source entity.Entity) (ae *ActiveEffect, isNew, refreshed bool, err error) {
	sd := effect.Data.Stacking
	if sd == nil {
		return nil, true, false, nil
	}

	group := m.stacks[m.stackKeyFor(effect)]
	var existing *ActiveEffect
	for _, candidate := range group {
		if candidate.removed {
			continue
		}
		if sd.StackLevelPolicy == SegregateLevels && candidate.level != effect.Level() {
			continue
		}
		existing = candidate
		break
	}
	if existing == nil {
		return nil, true, false, nil
	}

	// Overflow is checked before level mismatch (spec.md §4.5 decision
	// procedure, steps 2 then 3): a DenyApplication at the limit wins
	// even when the incoming level would otherwise trigger an override.
	limit := sd.StackLimit.Eval(float64(existing.level)) // <= 0 means unlimited
	atLimit := limit > 0 && existing.stackCount >= limit
	if atLimit && sd.StackOverflowPolicy == DenyApplication {
		return existing, false, false, ErrApplicationDenied
	}

	if sd.LevelDenialPolicy.matches(effect.Level(), existing.level) {
		return nil, false, false, ErrApplicationDenied
	}

	if sd.LevelOverridePolicy.matches(effect.Level(), existing.level) {
		existing.level = effect.Level()
		existing.Effect.level = effect.Level()
		if sd.LevelOverrideStackCountPolicy == ResetStacks {
			existing.stackCount = 1
			return existing, false, true, nil
		}
	}

	// Count advances on every successful merge regardless of
	// stackMagnitudePolicy; DontStack only freezes magnitude scaling,
	// not the count itself (spec.md §4.5 step 4). AllowApplication at
	// the limit succeeds with no count change.
	if !atLimit {
		existing.stackCount++
	}
	return existing, false, true, nil
}

// --- modifier evaluation and writes ------------------------------------

func (m *Manager) evalContext(effect *Effect, source entity.Entity, frozen map[magnitude.CaptureDefinition]float64) *magnitude.EvalContext {
	return &magnitude.EvalContext{
		Source:            source,
		Target:            m.target,
		Level:             float64(effect.Level()),
		SetByCallerValues: effect.SetByCallerValues,
		CustomParams:      make(map[string]float64),
		FrozenCaptures:    frozen,
	}
}

// evaluateWrites resolves an effect's writes for a one-shot (Instant or
// periodic-tick) application: Executions, if present, replace the
// ordinary modifier list entirely.
func (m *Manager) evaluateWrites(effect *Effect, ctx *magnitude.EvalContext) ([]ModifierEvaluatedData, error) {
	if len(effect.Data.Executions) > 0 {
		var out []ModifierEvaluatedData
		for _, ex := range effect.Data.Executions {
			writes, err := ex.Execute(ctx)
			if err != nil {
				return nil, err
			}
			out = append(out, writes...)
		}
		return out, nil
	}

	out := make([]ModifierEvaluatedData, 0, len(effect.Data.Modifiers))
	for _, mod := range effect.Data.Modifiers {
		val, err := magnitude.Evaluate(mod.Magnitude, ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, ModifierEvaluatedData{Attribute: mod.Attribute, Operation: mod.Operation, Magnitude: val})
	}
	return out, nil
}

func (m *Manager) commitWrites(writes []ModifierEvaluatedData, target, source entity.Entity) error {
	for _, w := range writes {
		dest := target
		if w.TargetsSource {
			dest = source
		}
		if dest == nil {
			continue
		}
		if err := dest.Attributes().AddToBase(w.Attribute, w.Magnitude); err != nil {
			return err
		}
	}
	return nil
}

func (m *Manager) executePeriod(ae *ActiveEffect, source entity.Entity) error {
	ctx := m.evalContext(ae.Effect, source, ae.frozen)
	writes, err := m.evaluateWrites(ae.Effect, ctx)
	if err != nil {
		return err
	}
	mult := 1.0
	if ae.Effect.Data.Stacking != nil && ae.Effect.Data.Stacking.StackMagnitudePolicy == Sum {
		mult = float64(ae.stackCount)
	}
	if mult != 1.0 {
		for i := range writes {
			writes[i].Magnitude *= mult
		}
	}
	if err := m.commitWrites(writes, m.target, source); err != nil {
		return err
	}
	m.dispatchCue(ae.Effect, cues.OnExecute, ae, attributeSet(writes))
	return nil
}

// applyStandingModifiers commits a fresh non-periodic ActiveEffect's
// modifier list onto the modifier channel, remembering the exact delta
// each wrote, and subscribes to any non-snapshot AttributeBased
// capture's source attribute for live recomputation.
func (m *Manager) applyStandingModifiers(ae *ActiveEffect, source entity.Entity) error {
	ctx := m.evalContext(ae.Effect, source, ae.frozen)
	mult := 1.0
	if ae.Effect.Data.Stacking != nil && ae.Effect.Data.Stacking.StackMagnitudePolicy == Sum {
		mult = float64(ae.stackCount)
	}

	states := make([]modifierState, len(ae.Effect.Data.Modifiers))
	for i, mod := range ae.Effect.Data.Modifiers {
		val, err := magnitude.Evaluate(mod.Magnitude, ctx)
		if err != nil {
			m.unwindStandingModifiers(ae, states[:i])
			return err
		}
		val *= mult
		if err := m.target.Attributes().AddFlatModifier(mod.Attribute, val); err != nil {
			var cascade *attributes.CascadeOverflowError
			if errors.As(err, &cascade) {
				m.log.WithError(err).WithField("effect", ae.Effect.Data.Name).Error("recompute cascade overflow applying modifier")
			}
			m.unwindStandingModifiers(ae, states[:i])
			return err
		}
		states[i] = modifierState{attribute: mod.Attribute, appliedDelta: val}
	}
	ae.modifiers = states

	m.subscribeLiveCaptures(ae, source)
	return nil
}

func (m *Manager) unwindStandingModifiers(ae *ActiveEffect, applied []modifierState) {
	for _, s := range applied {
		_ = m.target.Attributes().RemoveFlatModifier(s.attribute, s.appliedDelta)
	}
}

func (m *Manager) removeStandingModifiers(ae *ActiveEffect) error {
	for _, s := range ae.modifiers {
		if s.capture != nil && s.capture.unsubscribe != nil {
			s.capture.unsubscribe()
		}
		if err := m.target.Attributes().RemoveFlatModifier(s.attribute, s.appliedDelta); err != nil {
			return err
		}
	}
	ae.modifiers = nil
	return nil
}

// recomputeStandingModifiers re-evaluates every standing modifier
// against the active effect's current level and stack count, applying
// only the difference from what is already on the attribute. Used
// after a level-up or a stack-count change.
func (m *Manager) recomputeStandingModifiers(ae *ActiveEffect, source entity.Entity) error {
	if ae.Effect.Data.Periodic != nil {
		return nil
	}
	ctx := m.evalContext(ae.Effect, source, ae.frozen)
	mult := 1.0
	if ae.Effect.Data.Stacking != nil && ae.Effect.Data.Stacking.StackMagnitudePolicy == Sum {
		mult = float64(ae.stackCount)
	}

	next := make([]modifierState, len(ae.Effect.Data.Modifiers))
	for i, mod := range ae.Effect.Data.Modifiers {
		val, err := magnitude.Evaluate(mod.Magnitude, ctx)
		if err != nil {
			return err
		}
		val *= mult

		var prior modifierState
		if i < len(ae.modifiers) {
			prior = ae.modifiers[i]
		}
		delta := val - prior.appliedDelta
		if delta != 0 {
			if err := m.target.Attributes().AddFlatModifier(mod.Attribute, delta); err != nil {
				return err
			}
		}
		next[i] = modifierState{attribute: mod.Attribute, appliedDelta: val, capture: prior.capture}
	}
	ae.modifiers = next
	return nil
}

// subscribeLiveCaptures attaches a recompute-on-change listener for
// every non-snapshot AttributeBased modifier, so a captured source
// attribute's change is reflected immediately rather than waiting for
// the next Update tick (spec.md §4.3).
func (m *Manager) subscribeLiveCaptures(ae *ActiveEffect, source entity.Entity) {
	for i, mod := range ae.Effect.Data.Modifiers {
		abs, ok := mod.Magnitude.(magnitude.AttributeBasedSpec)
		if !ok || abs.Capture.Snapshot {
			continue
		}
		captureEntity := m.target
		if abs.Capture.From == magnitude.SourceEntity {
			captureEntity = source
		}
		if captureEntity == nil {
			continue
		}
		attr, ok := captureEntity.Attributes().Get(abs.Capture.Attribute)
		if !ok {
			continue
		}

		idx := i
		unsubscribe := attr.Subscribe(func(_ *attributes.Attribute, _ float64) error {
			return m.recomputeOneModifier(ae, source, idx)
		})
		ae.modifiers[idx].capture = &liveCapture{sourceAttribute: abs.Capture.Attribute, unsubscribe: unsubscribe}
	}
}

func (m *Manager) recomputeOneModifier(ae *ActiveEffect, source entity.Entity, idx int) error {
	if idx >= len(ae.Effect.Data.Modifiers) || idx >= len(ae.modifiers) {
		return nil
	}
	ctx := m.evalContext(ae.Effect, source, ae.frozen)
	mult := 1.0
	if ae.Effect.Data.Stacking != nil && ae.Effect.Data.Stacking.StackMagnitudePolicy == Sum {
		mult = float64(ae.stackCount)
	}
	mod := ae.Effect.Data.Modifiers[idx]
	val, err := magnitude.Evaluate(mod.Magnitude, ctx)
	if err != nil {
		return err
	}
	val *= mult
	delta := val - ae.modifiers[idx].appliedDelta
	if delta == 0 {
		return nil
	}
	if err := m.target.Attributes().AddFlatModifier(mod.Attribute, delta); err != nil {
		return err
	}
	ae.modifiers[idx].appliedDelta = val
	return nil
}

// --- components and cues ------------------------------------------------

func (m *Manager) runOnApply(effect *Effect, ae *ActiveEffect) {
	for _, c := range effect.Data.Components {
		if hook, ok := c.(OnApplyHook); ok {
			hook.OnApply(m.target, effect)
		}
	}
}

// dispatchCue fans an effect's cues out to the cue manager. landed names
// the attributes a write actually touched in this transaction; when
// RequireModifierSuccessToTriggerCue is set, a cue whose magnitude
// source is an attribute is suppressed unless that attribute both
// exists on the target and appears in landed (spec.md §4.6).
func (m *Manager) dispatchCue(effect *Effect, callback cues.CallbackType, ae *ActiveEffect, landed map[string]bool) {
	if m.cues == nil {
		return
	}
	info := cues.Event{EffectName: effect.Data.Name, Level: effect.Level()}
	if ae != nil {
		info.StackCount = ae.StackCount()
	}
	for _, cd := range effect.Data.Cues {
		if effect.Data.RequireModifierSuccessToTriggerCue && cd.RequiresAttribute() {
			if _, ok := m.target.Attributes().Get(cd.MagnitudeAttribute); !ok {
				continue
			}
			if !landed[cd.MagnitudeAttribute] {
				continue
			}
		}
		raw := m.resolveCueMagnitude(cd, effect, ae)
		m.cues.Dispatch(cd, callback, raw, info)
	}
}

// attributeSet collects the attribute names a one-shot write batch
// touched, for RequireModifierSuccessToTriggerCue gating.
func attributeSet(writes []ModifierEvaluatedData) map[string]bool {
	out := make(map[string]bool, len(writes))
	for _, w := range writes {
		out[w.Attribute] = true
	}
	return out
}

// modifierStateAttributeSet collects the attribute names a standing
// modifier batch touched, for RequireModifierSuccessToTriggerCue gating.
func modifierStateAttributeSet(states []modifierState) map[string]bool {
	out := make(map[string]bool, len(states))
	for _, s := range states {
		out[s.attribute] = true
	}
	return out
}

func (m *Manager) resolveCueMagnitude(cd cues.CueData, effect *Effect, ae *ActiveEffect) float64 {
	switch cd.MagnitudeType {
	case cues.EffectLevel:
		return float64(effect.Level())
	case cues.StackCount:
		if ae == nil {
			return 0
		}
		return float64(ae.StackCount())
	default:
		attr, ok := m.target.Attributes().Get(cd.MagnitudeAttribute)
		if !ok {
			return 0
		}
		switch cd.MagnitudeType {
		case cues.AttributeBaseValue:
			return attr.BaseValue()
		case cues.AttributeModifier:
			return attr.Modifier()
		case cues.AttributeValidModifier:
			return attr.ValidModifier()
		case cues.AttributeOverflow:
			return attr.Overflow()
		case cues.AttributeMin:
			return attr.Min()
		case cues.AttributeMax:
			return attr.Max()
		default:
			return attr.Current()
		}
	}
}

// --- level-up ------------------------------------------------------------

// LevelUp bumps an active effect's level by one and recomputes its
// standing modifiers and remaining duration against the new level.
func (m *Manager) LevelUp(handle ActiveEffectHandle) error {
	ae, ok := m.active[handle.id]
	if !ok {
		return &NotActiveError{Handle: handle}
	}
	ae.Effect.LevelUp()
	ae.level = ae.Effect.Level()
	if err := m.recomputeStandingModifiers(ae, ae.source); err != nil {
		return err
	}
	m.refreshDuration(ae)
	return nil
}

func snapshotActive(active map[uuid.UUID]*ActiveEffect) []*ActiveEffect {
	out := make([]*ActiveEffect, 0, len(active))
	for _, ae := range active {
		out = append(out, ae)
	}
	return out
}
