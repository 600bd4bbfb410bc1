package clue

import (
	"cmp"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/avast/retry-go/v4"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/mcoot/codenames/internal/dependencies/random"
	"github.com/mcoot/codenames/internal/model"
)

//go:embed associations.yaml
var defaultAssociations []byte

// Scoring constants for the built-in spymaster
const (
	strongAssociation = 0.5 // Similarity that counts toward the multi-word bonus
	multiWordBonus    = 0.6 // Added per strongly associated target
	nounBiasAmount    = 0.2 // Preference for concrete nouns over adjectives/adverbs
	assassinWeight    = 2.0 // Multiplier on assassin similarity
	topChoices        = 3   // Best candidates to choose among for variety
)

var abstractSuffixes = []string{"ly", "ing", "ed", "ness", "ful", "less"}

type riskParams struct {
	assassinMax   float64 // Veto above this assassin similarity
	penaltyWeight float64
	threshold     float64 // Fraction of the best similarity a target needs to be counted
}

var riskTable = map[RiskMode]riskParams{
	RiskSafe:       {assassinMax: 0.30, penaltyWeight: 1.5, threshold: 0.85},
	RiskNormal:     {assassinMax: 0.40, penaltyWeight: 1.0, threshold: 0.80},
	RiskAggressive: {assassinMax: 0.55, penaltyWeight: 0.7, threshold: 0.72},
}

// Associations maps candidate clue -> board word -> strength in [0, 1]
type Associations map[string]map[string]float64

type associationFile struct {
	Clues map[string]map[string]float64 `yaml:"clues"`
}

// ParseAssociations decodes a YAML association table
func ParseAssociations(data []byte) (Associations, error) {
	var file associationFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing associations: %w", err)
	}
	if len(file.Clues) == 0 {
		return nil, errors.New("association table has no clues")
	}

	table := make(Associations, len(file.Clues))
	for clue, words := range file.Clues {
		normalized := make(map[string]float64, len(words))
		for word, strength := range words {
			if strength < 0 || strength > 1 {
				return nil, fmt.Errorf("association %s/%s: strength %.2f out of range", clue, word, strength)
			}
			normalized[model.NormalizeWord(word)] = strength
		}
		table[model.NormalizeWord(clue)] = normalized
	}
	return table, nil
}

// LoadAssociations reads a YAML association table from path
func LoadAssociations(path string) (Associations, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseAssociations(data)
}

// DefaultAssociations returns the built-in table, which covers the
// built-in vocabulary
func DefaultAssociations() Associations {
	table, err := ParseAssociations(defaultAssociations)
	if err != nil {
		panic(err)
	}
	return table
}

// Similarity returns the association strength between clue and word
func (a Associations) Similarity(clue, word string) float64 {
	return a[clue][word]
}

// AssociationProvider is an in-process spymaster. It scores every clue
// in its table against the board: reward for the team's words, a bonus
// for covering several at once, a penalty for the opponent's and neutral
// words, and a veto on clues too close to the assassin.
type AssociationProvider struct {
	table      Associations
	candidates []string
	risk       RiskMode
	params     riskParams
	random     random.Random
	logger     *slog.Logger
}

// NewAssociationProvider creates a spymaster over table
func NewAssociationProvider(table Associations, risk RiskMode, rnd random.Random, logger *slog.Logger) *AssociationProvider {
	params, ok := riskTable[risk]
	if !ok {
		risk, params = RiskNormal, riskTable[RiskNormal]
	}

	candidates := lo.Keys(table)
	slices.Sort(candidates)

	return &AssociationProvider{
		table:      table,
		candidates: candidates,
		risk:       risk,
		params:     params,
		random:     rnd,
		logger:     logger.With(slog.String("component", "association-spymaster")),
	}
}

var _ Provider = (*AssociationProvider)(nil)

type scoredClue struct {
	word  string
	score float64
	sims  []float64 // Per target word
}

// RequestClue picks among the best scoring clues and counts the targets
// it plausibly covers
func (p *AssociationProvider) RequestClue(ctx context.Context, view model.BoardView) (model.Clue, error) {
	if err := ctx.Err(); err != nil {
		return model.Clue{}, unavailable("association", err)
	}

	targets := view.Unrevealed(view.Team)
	if len(targets) == 0 {
		return model.Clue{}, retry.Unrecoverable(fmt.Errorf("%w: no words left to clue for %s", model.ErrClueUnavailable, view.Team))
	}
	bad := append(view.Unrevealed(view.Team.Opponent()), view.Unrevealed(model.TeamNeutral)...)
	assassins := view.Unrevealed(model.TeamAssassin)

	onBoard := lo.SliceToMap(view.Cells, func(c model.Cell) (string, struct{}) {
		return c.Word, struct{}{}
	})

	var scored []scoredClue
	for _, candidate := range p.candidates {
		if _, ok := onBoard[candidate]; ok {
			continue
		}
		sc, ok := p.score(candidate, targets, bad, assassins)
		if !ok {
			continue
		}
		scored = append(scored, sc)
	}
	if len(scored) == 0 {
		// The same board always scores the same, so a retry cannot help
		return model.Clue{}, retry.Unrecoverable(fmt.Errorf("%w: no association covers the remaining %s words", model.ErrClueUnavailable, view.Team))
	}

	slices.SortFunc(scored, func(a, b scoredClue) int {
		if c := cmp.Compare(b.score, a.score); c != 0 {
			return c
		}
		return cmp.Compare(a.word, b.word)
	})

	best := scored[p.random.Intn(min(topChoices, len(scored)))]
	number := p.countTargets(best.sims)

	p.logger.Debug("clue chosen",
		slog.String("team", view.Team.String()),
		slog.String("risk", string(p.risk)),
		slog.String("clue", best.word),
		slog.Int("number", number),
		slog.Float64("score", best.score),
	)

	return model.Clue{Word: best.word, Count: number, Team: view.Team}, nil
}

// score returns false for clues that are vetoed or say nothing about
// any target
func (p *AssociationProvider) score(candidate string, targets, bad, assassins []string) (scoredClue, bool) {
	sims := lo.Map(targets, func(t string, _ int) float64 {
		return p.table.Similarity(candidate, t)
	})
	if lo.Max(sims) == 0 {
		return scoredClue{}, false
	}

	var assassinSim float64
	for _, a := range assassins {
		assassinSim = max(assassinSim, p.table.Similarity(candidate, a))
	}
	if assassinSim > p.params.assassinMax {
		return scoredClue{}, false
	}

	var penalty float64
	if len(bad) > 0 {
		penalty = lo.SumBy(bad, func(w string) float64 {
			return p.table.Similarity(candidate, w)
		}) / float64(len(bad))
	}

	strong := lo.CountBy(sims, func(s float64) bool { return s > strongAssociation })

	score := lo.Sum(sims) +
		float64(strong)*multiWordBonus -
		penalty*p.params.penaltyWeight +
		nounBias(candidate) -
		assassinSim*assassinWeight

	return scoredClue{word: candidate, score: score, sims: sims}, true
}

// countTargets counts targets within the risk threshold of the best
// match, clamped to [1, len(sims)]
func (p *AssociationProvider) countTargets(sims []float64) int {
	threshold := p.params.threshold * lo.Max(sims)
	n := lo.CountBy(sims, func(s float64) bool { return s > threshold })
	return max(1, min(n, len(sims)))
}

func nounBias(word string) float64 {
	word = strings.ToLower(word)
	for _, suffix := range abstractSuffixes {
		if strings.HasSuffix(word, suffix) {
			return -nounBiasAmount
		}
	}
	return nounBiasAmount
}
