// Package rolls implements the roll orchestrator: it computes modifiers,
// makes rolls and records them in the character's history and the shared log
package rolls

//go:generate mockgen -destination=mock/mock_service.go -package=rollsmock github.com/KirkDiggler/rpg-sheet/internal/orchestrators/rolls Service

import (
	"context"
	"strconv"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"go.uber.org/zap"

	"github.com/KirkDiggler/rpg-sheet/internal/clients/external"
	"github.com/KirkDiggler/rpg-sheet/internal/engine"
	"github.com/KirkDiggler/rpg-sheet/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-sheet/internal/errors"
	rollhistory "github.com/KirkDiggler/rpg-sheet/internal/repositories/roll_history"
	"github.com/KirkDiggler/rpg-sheet/internal/repositories/character"
	rolllog "github.com/KirkDiggler/rpg-sheet/internal/repositories/roll_log"
	"github.com/KirkDiggler/rpg-sheet/internal/rolls"
)

// Service defines the interface for roll operations
type Service interface {
	// Rolls made on a character's behalf
	RollAbilityCheck(ctx context.Context, input *RollAbilityCheckInput) (*RollOutput, error)
	RollSavingThrow(ctx context.Context, input *RollSavingThrowInput) (*RollOutput, error)
	RollSkillCheck(ctx context.Context, input *RollSkillCheckInput) (*RollOutput, error)
	RollAttack(ctx context.Context, input *RollAttackInput) (*RollOutput, error)
	RollDamage(ctx context.Context, input *RollDamageInput) (*RollOutput, error)
	RollHealing(ctx context.Context, input *RollHealingInput) (*RollOutput, error)
	RollCustom(ctx context.Context, input *RollCustomInput) (*RollOutput, error)
	RollSpell(ctx context.Context, input *RollSpellInput) (*RollSpellOutput, error)

	// Shared table log
	ShareRoll(ctx context.Context, input *ShareRollInput) error
	ListSharedRolls(ctx context.Context, input *ListSharedRollsInput) (*ListSharedRollsOutput, error)

	// Per-character history
	GetHistory(ctx context.Context, input *GetHistoryInput) (*GetHistoryOutput, error)
	ClearHistory(ctx context.Context, input *ClearHistoryInput) (*ClearHistoryOutput, error)

	// Rules
	ListBonusDamage(ctx context.Context, input *ListBonusDamageInput) (*ListBonusDamageOutput, error)

	// Saved sheets
	SaveCharacter(ctx context.Context, input *SaveCharacterInput) (*SaveCharacterOutput, error)
	GetCharacter(ctx context.Context, input *GetCharacterInput) (*GetCharacterOutput, error)
	DeleteCharacter(ctx context.Context, input *DeleteCharacterInput) error
	ListCharacters(ctx context.Context) (*ListCharactersOutput, error)
}

// Config holds the dependencies for the roll orchestrator
type Config struct {
	Factory     *rolls.Factory
	HistoryRepo rollhistory.Repository
	RollLog     rolllog.Repository
	RulesClient external.Client
	// CharacterRepo is optional; without it every sheet must be sent inline
	CharacterRepo character.Repository
	// EventBus is optional; when set every roll added to the shared log is
	// published as dnd5e.EventRollShared with the roll as the event source
	EventBus   events.EventBus
	Logger     *zap.Logger
	HistoryTTL time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Factory == nil {
		vb.RequiredField("Factory")
	}
	if c.HistoryRepo == nil {
		vb.RequiredField("HistoryRepo")
	}
	if c.RollLog == nil {
		vb.RequiredField("RollLog")
	}
	if c.RulesClient == nil {
		vb.RequiredField("RulesClient")
	}
	if c.Logger == nil {
		vb.RequiredField("Logger")
	}

	return vb.Build()
}

type orchestrator struct {
	factory     *rolls.Factory
	historyRepo rollhistory.Repository
	rollLog     rolllog.Repository
	rules       external.Client
	characters  character.Repository
	eventBus    events.EventBus
	logger      *zap.Logger
	historyTTL  time.Duration
}

// NewOrchestrator creates a new roll orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		factory:     cfg.Factory,
		historyRepo: cfg.HistoryRepo,
		rollLog:     cfg.RollLog,
		rules:       cfg.RulesClient,
		characters:  cfg.CharacterRepo,
		eventBus:    cfg.EventBus,
		logger:      cfg.Logger,
		historyTTL:  cfg.HistoryTTL,
	}, nil
}

// RollAbilityCheck rolls d20 plus the ability modifier
func (o *orchestrator) RollAbilityCheck(ctx context.Context, input *RollAbilityCheckInput) (*RollOutput, error) {
	if err := requireCharacterName(input.CharacterName); err != nil {
		return nil, err
	}

	mod, err := o.resolveModifier(ctx, input.CharacterName, input.Modifier, input.Character, func(c *dnd5e.Character) (int, error) {
		return engine.AbilityCheckModifier(c, input.Ability)
	})
	if err != nil {
		return nil, err
	}

	roll, err := o.factory.AbilityCheck(abilityName(input.Ability), mod)
	if err != nil {
		return nil, err
	}
	return o.record(ctx, input.CharacterName, roll), nil
}

// RollSavingThrow rolls d20 plus the saving throw modifier
func (o *orchestrator) RollSavingThrow(ctx context.Context, input *RollSavingThrowInput) (*RollOutput, error) {
	if err := requireCharacterName(input.CharacterName); err != nil {
		return nil, err
	}

	mod, err := o.resolveModifier(ctx, input.CharacterName, input.Modifier, input.Character, func(c *dnd5e.Character) (int, error) {
		return engine.SavingThrowModifier(c, input.Ability)
	})
	if err != nil {
		return nil, err
	}

	roll, err := o.factory.SavingThrow(abilityName(input.Ability)+" Save", mod)
	if err != nil {
		return nil, err
	}
	return o.record(ctx, input.CharacterName, roll), nil
}

// RollSkillCheck rolls d20 plus the skill modifier
func (o *orchestrator) RollSkillCheck(ctx context.Context, input *RollSkillCheckInput) (*RollOutput, error) {
	if err := requireCharacterName(input.CharacterName); err != nil {
		return nil, err
	}

	mod, err := o.resolveModifier(ctx, input.CharacterName, input.Modifier, input.Character, func(c *dnd5e.Character) (int, error) {
		return engine.SkillModifier(c, input.Skill)
	})
	if err != nil {
		return nil, err
	}

	roll, err := o.factory.SkillCheck(input.Skill, mod)
	if err != nil {
		return nil, err
	}
	return o.record(ctx, input.CharacterName, roll), nil
}

// RollAttack rolls d20 plus the attack bonus
func (o *orchestrator) RollAttack(ctx context.Context, input *RollAttackInput) (*RollOutput, error) {
	if err := requireCharacterName(input.CharacterName); err != nil {
		return nil, err
	}
	if input.Name == "" {
		return nil, errors.InvalidArgument("attack name is required")
	}

	roll, err := o.factory.Attack(input.Name, input.AttackBonus)
	if err != nil {
		return nil, err
	}
	return o.record(ctx, input.CharacterName, roll), nil
}

// RollDamage rolls weapon or spell damage with optional bonus dice
func (o *orchestrator) RollDamage(ctx context.Context, input *RollDamageInput) (*RollOutput, error) {
	if err := requireCharacterName(input.CharacterName); err != nil {
		return nil, err
	}
	if input.Name == "" {
		return nil, errors.InvalidArgument("damage name is required")
	}

	parsed := o.factory.ParseFormula(input.Formula)
	weaponSides := parsed.DiceSides
	if input.DieSize > 0 {
		weaponSides = input.DieSize
	}
	extra := make([]string, 0, len(input.BonusDice))
	for _, bonus := range input.BonusDice {
		extra = append(extra, engine.WeaponDiceFormula(bonus, weaponSides))
	}

	roll, err := o.factory.DamageFormula(input.Name, parsed, rolls.DamageOptions{
		DieSize:   input.DieSize,
		Critical:  input.Critical,
		ExtraDice: extra,
	})
	if err != nil {
		return nil, err
	}
	return o.record(ctx, input.CharacterName, roll), nil
}

// RollHealing rolls a healing formula
func (o *orchestrator) RollHealing(ctx context.Context, input *RollHealingInput) (*RollOutput, error) {
	if err := requireCharacterName(input.CharacterName); err != nil {
		return nil, err
	}
	if input.Name == "" {
		return nil, errors.InvalidArgument("healing name is required")
	}

	var abilityMod int
	switch {
	case input.AbilityModifier != nil:
		abilityMod = *input.AbilityModifier
	case input.ApplyModifier:
		sheet, err := o.sheet(ctx, input.CharacterName, input.Character)
		if err != nil {
			return nil, err
		}
		abilityMod = engine.SpellcastingModifier(sheet)
	}

	roll, err := o.factory.Healing(input.Name, input.Formula, abilityMod, input.ApplyModifier)
	if err != nil {
		return nil, err
	}
	return o.record(ctx, input.CharacterName, roll), nil
}

// RollCustom rolls a user-entered formula, rejecting anything that is not dice
func (o *orchestrator) RollCustom(ctx context.Context, input *RollCustomInput) (*RollOutput, error) {
	if err := requireCharacterName(input.CharacterName); err != nil {
		return nil, err
	}

	roll, err := o.factory.Custom(input.Name, input.Formula)
	if err != nil {
		return nil, err
	}
	return o.record(ctx, input.CharacterName, roll), nil
}

// RollSpell looks up a spell and makes its attack and damage rolls
func (o *orchestrator) RollSpell(ctx context.Context, input *RollSpellInput) (*RollSpellOutput, error) {
	if err := requireCharacterName(input.CharacterName); err != nil {
		return nil, err
	}
	if input.SpellKey == "" {
		return nil, errors.InvalidArgument("spell key is required")
	}

	sheet, err := o.sheet(ctx, input.CharacterName, input.Character)
	if err != nil {
		return nil, err
	}

	spell, err := o.rules.GetSpellDamage(ctx, input.SpellKey)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to look up spell %s", input.SpellKey)
	}

	cfg := engine.SpellAttackConfigFor(*spell, input.SlotLevel)
	formula := cfg.DamageFormula
	if formula == "" {
		formula = input.FallbackFormula
	}
	if cfg.AttackType == dnd5e.AttackTypeNone && formula != "" {
		cfg.AttackType = dnd5e.AttackTypeRangedSpell
		cfg.DamageFormula = formula
	}

	out := &RollSpellOutput{Config: cfg}

	switch cfg.AttackType {
	case dnd5e.AttackTypeMeleeSpell, dnd5e.AttackTypeRangedSpell:
		attack, err := o.factory.Attack(spell.Name, engine.CharacterSpellAttackBonus(sheet))
		if err != nil {
			return nil, err
		}
		attack = o.record(ctx, input.CharacterName, attack).Roll
		out.Attack = &attack
	case dnd5e.AttackTypeSavingThrow:
		out.SaveDC = engine.CharacterSpellSaveDC(sheet)
	}

	if formula == "" {
		return out, nil
	}

	opts := rolls.DamageOptions{
		Critical: input.Critical && out.Attack != nil,
	}
	if input.TargetDamaged && cfg.VariableDie > 0 {
		opts.DieSize = cfg.VariableDie
	}

	damage, err := o.factory.Damage(spell.Name, formula, opts)
	if err != nil {
		return nil, err
	}
	damage = o.record(ctx, input.CharacterName, damage).Roll
	out.Damage = &damage

	return out, nil
}

// ShareRoll adds a roll made elsewhere to the shared log
func (o *orchestrator) ShareRoll(ctx context.Context, input *ShareRollInput) error {
	if input == nil {
		return errors.InvalidArgument("roll is required")
	}
	if !input.Roll.Type.Valid() && input.Roll.Type != "" {
		return errors.InvalidArgumentf("unknown roll type: %q", input.Roll.Type)
	}

	if err := o.rollLog.Append(ctx, rolllog.AppendInput{Roll: input.Roll}); err != nil {
		return err
	}

	o.publish(ctx, input.Roll)
	return nil
}

// ListSharedRolls returns shared rolls newer than input.Since
func (o *orchestrator) ListSharedRolls(ctx context.Context, input *ListSharedRollsInput) (*ListSharedRollsOutput, error) {
	out, err := o.rollLog.Query(ctx, rolllog.QueryInput{Since: input.Since})
	if err != nil {
		return nil, err
	}
	return &ListSharedRollsOutput{Rolls: out.Rolls}, nil
}

// GetHistory returns a character's recent rolls
func (o *orchestrator) GetHistory(ctx context.Context, input *GetHistoryInput) (*GetHistoryOutput, error) {
	if err := requireCharacterName(input.CharacterName); err != nil {
		return nil, err
	}

	out, err := o.historyRepo.Get(ctx, rollhistory.GetInput{CharacterName: input.CharacterName})
	if err != nil {
		if errors.IsNotFound(err) {
			return &GetHistoryOutput{
				History: &dnd5e.RollHistory{
					CharacterName: input.CharacterName,
					Rolls:         []dnd5e.RollResult{},
				},
			}, nil
		}
		return nil, err
	}

	return &GetHistoryOutput{History: out.History}, nil
}

// ClearHistory removes a character's recent rolls
func (o *orchestrator) ClearHistory(ctx context.Context, input *ClearHistoryInput) (*ClearHistoryOutput, error) {
	if err := requireCharacterName(input.CharacterName); err != nil {
		return nil, err
	}

	out, err := o.historyRepo.Clear(ctx, rollhistory.ClearInput{CharacterName: input.CharacterName})
	if err != nil {
		return nil, err
	}

	o.logger.Info("cleared roll history",
		zap.String("character", input.CharacterName),
		zap.Int32("rolls_cleared", out.RollsCleared),
	)
	return &ClearHistoryOutput{RollsCleared: out.RollsCleared}, nil
}

// ListBonusDamage resolves conditional bonus damage for a character
func (o *orchestrator) ListBonusDamage(ctx context.Context, input *ListBonusDamageInput) (*ListBonusDamageOutput, error) {
	sheet := input.Character
	if sheet == nil && input.CharacterName != "" {
		var err error
		if sheet, err = o.sheet(ctx, input.CharacterName, nil); err != nil {
			return nil, err
		}
	}

	class, level, features, race := input.PrimaryClass, input.TotalLevel, input.Features, input.Race
	if c := sheet; c != nil {
		class = c.PrimaryClass()
		level = strconv.Itoa(engine.TotalLevel(c))
		features = c.Features
		race = c.Race
	}

	return &ListBonusDamageOutput{
		Features: engine.ResolveBonusDamage(class, level, features, race),
	}, nil
}

// SaveCharacter stores a sheet under its name, replacing any earlier copy
func (o *orchestrator) SaveCharacter(ctx context.Context, input *SaveCharacterInput) (*SaveCharacterOutput, error) {
	if o.characters == nil {
		return nil, errors.Unimplemented("character storage is not configured")
	}
	if input.Character == nil {
		return nil, errors.InvalidArgument("character is required")
	}

	out, err := o.characters.Save(ctx, character.SaveInput{Character: input.Character})
	if err != nil {
		return nil, err
	}

	o.logger.Info("saved character",
		zap.String("character", input.Character.Name),
		zap.Bool("created", out.Created),
	)
	return &SaveCharacterOutput{Character: out.Character, Created: out.Created}, nil
}

// GetCharacter returns a saved sheet
func (o *orchestrator) GetCharacter(ctx context.Context, input *GetCharacterInput) (*GetCharacterOutput, error) {
	if o.characters == nil {
		return nil, errors.Unimplemented("character storage is not configured")
	}
	if err := requireCharacterName(input.Name); err != nil {
		return nil, err
	}

	out, err := o.characters.Get(ctx, character.GetInput{Name: input.Name})
	if err != nil {
		return nil, err
	}
	return &GetCharacterOutput{Character: out.Character}, nil
}

// DeleteCharacter removes a saved sheet. The character's roll history is kept.
func (o *orchestrator) DeleteCharacter(ctx context.Context, input *DeleteCharacterInput) error {
	if o.characters == nil {
		return errors.Unimplemented("character storage is not configured")
	}
	if err := requireCharacterName(input.Name); err != nil {
		return err
	}

	if _, err := o.characters.Delete(ctx, character.DeleteInput{Name: input.Name}); err != nil {
		return err
	}
	o.logger.Info("deleted character", zap.String("character", input.Name))
	return nil
}

// ListCharacters returns the saved sheet names
func (o *orchestrator) ListCharacters(ctx context.Context) (*ListCharactersOutput, error) {
	if o.characters == nil {
		return &ListCharactersOutput{Names: []string{}}, nil
	}

	out, err := o.characters.List(ctx, character.ListInput{})
	if err != nil {
		return nil, err
	}
	return &ListCharactersOutput{Names: out.Names}, nil
}

// sheet returns the inline sheet when given, else the saved one. A missing
// saved sheet is not an error: callers fall back to explicit modifiers.
func (o *orchestrator) sheet(ctx context.Context, name string, inline *dnd5e.Character) (*dnd5e.Character, error) {
	if inline != nil || o.characters == nil || name == "" {
		return inline, nil
	}

	out, err := o.characters.Get(ctx, character.GetInput{Name: name})
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "failed to load character %s", name)
	}
	return out.Character, nil
}

// resolveModifier uses an explicit modifier when given, otherwise computes it
// from the inline or saved sheet
func (o *orchestrator) resolveModifier(ctx context.Context, name string, explicit *int, inline *dnd5e.Character, compute func(*dnd5e.Character) (int, error)) (int, error) {
	if explicit != nil {
		return *explicit, nil
	}
	sheet, err := o.sheet(ctx, name, inline)
	if err != nil {
		return 0, err
	}
	if sheet == nil {
		return 0, errors.InvalidArgument("either a modifier or the character sheet is required")
	}
	return compute(sheet)
}

// record stores the roll in the character's history and the shared log.
// Storage failures are logged and never fail the roll.
func (o *orchestrator) record(ctx context.Context, characterName string, roll dnd5e.RollResult) *RollOutput {
	logger := o.logger.With(
		zap.String("character", characterName),
		zap.String("roll_id", roll.ID),
	)

	_, err := o.historyRepo.Append(ctx, rollhistory.AppendInput{
		CharacterName: characterName,
		Roll:          roll,
		TTL:           o.historyTTL,
	})
	if err != nil {
		logger.Warn("failed to record roll history", zap.Error(err))
	}

	shared := dnd5e.SharedRollResult{RollResult: roll, CharacterName: characterName}
	if err := o.rollLog.Append(ctx, rolllog.AppendInput{Roll: shared}); err != nil {
		logger.Warn("failed to post roll to shared log", zap.Error(err))
	} else {
		o.publish(ctx, shared)
	}

	logger.Debug("roll",
		zap.String("type", string(roll.Type)),
		zap.String("formula", roll.Formula),
		zap.Ints("rolls", roll.Rolls),
		zap.Int("modifier", roll.Modifier),
		zap.Int("total", roll.Total),
	)

	return &RollOutput{Roll: roll}
}

func (o *orchestrator) publish(ctx context.Context, roll dnd5e.SharedRollResult) {
	if o.eventBus == nil {
		return
	}
	event := events.NewGameEvent(dnd5e.EventRollShared, &roll, nil)
	if err := o.eventBus.Publish(ctx, event); err != nil {
		o.logger.Warn("failed to publish shared roll",
			zap.String("roll_id", roll.ID),
			zap.Error(err),
		)
	}
}

func requireCharacterName(name string) error {
	if name == "" {
		return errors.InvalidArgument("character name is required")
	}
	return nil
}

var abilityNames = map[string]string{
	dnd5e.AbilityStrength:     "Strength",
	dnd5e.AbilityDexterity:    "Dexterity",
	dnd5e.AbilityConstitution: "Constitution",
	dnd5e.AbilityIntelligence: "Intelligence",
	dnd5e.AbilityWisdom:       "Wisdom",
	dnd5e.AbilityCharisma:     "Charisma",
}

func abilityName(ability string) string {
	if name, ok := abilityNames[dnd5e.NormalizeAbilityCode(ability)]; ok {
		return name
	}
	return ability
}
