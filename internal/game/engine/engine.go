// Package engine runs a game: it owns the current floor and the player,
// applies the player's actions, recomputes the field of view and gives every
// monster its turn.
package engine

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/tombs/internal/game/action"
	"github.com/cory-johannsen/tombs/internal/game/ai"
	"github.com/cory-johannsen/tombs/internal/game/color"
	"github.com/cory-johannsen/tombs/internal/game/dice"
	"github.com/cory-johannsen/tombs/internal/game/inventory"
	"github.com/cory-johannsen/tombs/internal/game/messagelog"
	"github.com/cory-johannsen/tombs/internal/game/npc"
	"github.com/cory-johannsen/tombs/internal/game/procgen"
	"github.com/cory-johannsen/tombs/internal/game/world"
	"github.com/cory-johannsen/tombs/internal/scripting"
)

// ErrPlayerDead is returned for any action attempted after the player died.
var ErrPlayerDead = errors.New("engine: the player is dead")

// WelcomeMessage opens every new game's log.
const WelcomeMessage = "Hello and welcome, adventurer, to yet another dungeon!"

// Policies builds and restores AI policies.
type Policies interface {
	New(kind string, actor *world.Actor) (world.AI, error)
	Restore(s *ai.State, actor *world.Actor) (world.AI, error)
}

// Deps are the collaborators an Engine is built from.
type Deps struct {
	Generator procgen.Generator
	Templates *npc.Registry
	Items     *inventory.Registry
	Policies  Policies
	// Scripts may be nil when no HTN policies are in play.
	Scripts *scripting.Manager
	Dice    dice.Source
	// FOV defaults to world.Shadowcast; FOVRadius to world.DefaultFOVRadius.
	FOV       world.FOV
	FOVRadius int
	Logger    *zap.Logger
}

func (d Deps) validate() error {
	var errs []error
	if d.Generator == nil {
		errs = append(errs, errors.New("generator must not be nil"))
	}
	if d.Templates == nil {
		errs = append(errs, errors.New("templates must not be nil"))
	}
	if d.Items == nil {
		errs = append(errs, errors.New("items must not be nil"))
	}
	if d.Policies == nil {
		errs = append(errs, errors.New("policies must not be nil"))
	}
	if d.Dice == nil {
		errs = append(errs, errors.New("dice must not be nil"))
	}
	if d.Logger == nil {
		errs = append(errs, errors.New("logger must not be nil"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("engine: %w", errors.Join(errs...))
	}
	return nil
}

// Engine is a running game. It is single-threaded: callers must not use an
// Engine from more than one goroutine at a time.
type Engine struct {
	deps      Deps
	fov       world.FOV
	fovRadius int
	logger    *zap.Logger

	gameMap  *world.GameMap
	player   *world.Actor
	log      *messagelog.Log
	floor    int
	turn     int
	gameOver bool
}

func newEngine(deps Deps) (*Engine, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		deps:      deps,
		fov:       deps.FOV,
		fovRadius: deps.FOVRadius,
		logger:    deps.Logger,
		log:       messagelog.New(),
	}
	if e.fov == nil {
		e.fov = world.Shadowcast{}
	}
	if e.fovRadius <= 0 {
		e.fovRadius = world.DefaultFOVRadius
	}
	if deps.Scripts != nil {
		ai.Bind(deps.Scripts, e)
	}
	return e, nil
}

// NewGame spawns the player with a dagger and leather armor equipped,
// generates the first floor and greets the player.
//
// Postcondition: Floor() == 1; the FOV is computed; the log holds WelcomeMessage.
func NewGame(deps Deps) (*Engine, error) {
	e, err := newEngine(deps)
	if err != nil {
		return nil, err
	}
	tmpl, ok := deps.Templates.Template(npc.PlayerID)
	if !ok {
		return nil, fmt.Errorf("engine: no %q template", npc.PlayerID)
	}
	player, err := npc.Spawn(tmpl, deps.Policies, deps.Dice, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	e.player = player

	for _, id := range []string{"dagger", "leather_armor"} {
		it, err := deps.Items.NewItem(id)
		if err != nil {
			return nil, fmt.Errorf("engine: starting kit: %w", err)
		}
		if err := player.Inventory.Add(it); err != nil {
			return nil, fmt.Errorf("engine: starting kit: %w", err)
		}
		if _, err := player.Equipment.ToggleEquip(it); err != nil {
			return nil, fmt.Errorf("engine: starting kit: %w", err)
		}
	}

	if err := e.GenerateFloor(); err != nil {
		return nil, err
	}
	e.log.Add(WelcomeMessage, color.Welcome, true)
	e.logger.Info("new game",
		zap.String("player", player.ID),
		zap.Int("max_hp", player.Fighter.MaxHP),
	)
	return e, nil
}

// Map implements world.Engine.
func (e *Engine) Map() *world.GameMap { return e.gameMap }

// Player implements world.Engine.
func (e *Engine) Player() *world.Actor { return e.player }

// Dice implements world.Engine.
func (e *Engine) Dice() dice.Source { return e.deps.Dice }

// Log implements world.Engine.
func (e *Engine) Log() *messagelog.Log { return e.log }

// Floor returns the current dungeon depth, starting at 1.
func (e *Engine) Floor() int { return e.floor }

// Turn returns the number of completed player turns.
func (e *Engine) Turn() int { return e.turn }

// GameOver reports whether the player has died.
func (e *Engine) GameOver() bool { return e.gameOver }

// GenerateFloor replaces the current floor with the next one down.
func (e *Engine) GenerateFloor() error {
	m, err := e.deps.Generator.Generate(e.floor+1, e.player)
	if err != nil {
		return fmt.Errorf("engine: generating floor %d: %w", e.floor+1, err)
	}
	e.floor++
	e.gameMap = m
	e.UpdateFOV()
	e.logger.Debug("entered floor", zap.Int("floor", e.floor))
	return nil
}

// Descend implements world.Engine.
func (e *Engine) Descend() error {
	return e.GenerateFloor()
}

// UpdateFOV recomputes what the player can see and marks it explored.
func (e *Engine) UpdateFOV() {
	e.gameMap.Recompute(e.fov, e.player.X, e.player.Y, e.fovRadius)
}

// Confuse implements world.Engine.
func (e *Engine) Confuse(target *world.Actor, turns int) {
	target.AI = ai.NewConfused(target, target.AI, turns)
}

// ResolveDeath implements world.Engine. The player's death ends the game; a
// monster's death credits its experience to the player and drops its loot.
func (e *Engine) ResolveDeath(ev *world.DeathEvent) {
	if ev.Actor == e.player {
		e.log.Add("You died!", color.PlayerDie, true)
		e.gameOver = true
		e.logger.Info("player died", zap.Int("floor", e.floor), zap.Int("turn", e.turn))
		return
	}

	e.log.Add(fmt.Sprintf("%s is dead!", ev.Name), color.EnemyDie, true)
	e.grantXP(ev.XPGiven)
	e.dropLoot(ev.Actor)
}

func (e *Engine) grantXP(xp int) {
	lvl := &e.player.Level
	if !lvl.AddXP(xp) {
		return
	}
	e.log.Add(fmt.Sprintf("You gain %d experience points.", xp), color.White, true)
	if lvl.RequiresLevelUp() {
		e.log.Add(fmt.Sprintf("You advance to level %d!", lvl.CurrentLevel+1), color.White, true)
	}
}

func (e *Engine) dropLoot(corpse *world.Actor) {
	for _, drop := range inventory.GenerateLoot(corpse.Loot, e.deps.Dice) {
		for i := 0; i < drop.Quantity; i++ {
			it, err := e.deps.Items.NewItem(drop.ItemDefID)
			if err != nil {
				e.logger.Warn("dropping loot", zap.String("item", drop.ItemDefID), zap.Error(err))
				break
			}
			e.gameMap.AddItem(&world.GroundItem{X: corpse.X, Y: corpse.Y, Item: it})
		}
	}
}

// HandlePlayerAction performs a for the player. An impossible action is
// logged and returned without using up the turn; any other success ends the
// player's turn.
//
// Postcondition: returns ErrPlayerDead once the player has died.
func (e *Engine) HandlePlayerAction(a action.Action) error {
	if e.gameOver {
		return ErrPlayerDead
	}
	if err := a.Perform(e); err != nil {
		if errors.Is(err, action.ErrImpossible) {
			e.log.Add(action.Message(err), color.Impossible, true)
		}
		return err
	}
	return e.EndPlayerTurn()
}

// EndPlayerTurn recomputes the field of view, runs every monster and
// advances the turn counter.
func (e *Engine) EndPlayerTurn() error {
	e.UpdateFOV()
	if err := e.HandleEnemyTurns(); err != nil {
		return err
	}
	e.turn++
	return nil
}

// HandleEnemyTurns gives every living non-player actor one turn, in spawn
// order. Impossible actions are ignored; any other error stops the loop.
func (e *Engine) HandleEnemyTurns() error {
	for _, a := range e.gameMap.LivingActors() {
		if a == e.player || !a.IsAlive() {
			continue
		}
		if err := a.AI.Perform(e); err != nil {
			if errors.Is(err, action.ErrImpossible) {
				e.logger.Debug("enemy action impossible",
					zap.String("actor", a.Name),
					zap.String("reason", action.Message(err)),
				)
				continue
			}
			return fmt.Errorf("engine: %s's turn: %w", a.Name, err)
		}
	}
	return nil
}
