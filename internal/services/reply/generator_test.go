package reply

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scamhive/honeypot-service/internal/domain/models"
)

func newDeterministic(seed int64) *Generator {
	return NewGeneratorWithSource(rand.NewSource(seed))
}

func intents(list ...models.ScamIntent) models.IntentSet {
	set := make(models.IntentSet)
	for _, intent := range list {
		set.Add(intent)
	}
	return set
}

func TestGenerateReply_FirstTurnAlwaysInitial(t *testing.T) {
	// The first reply ignores intents entirely.
	for seed := int64(0); seed < 20; seed++ {
		g := newDeterministic(seed)
		out := g.GenerateReply("you won a prize!", intents(models.IntentFakePrize), 0)
		assert.Contains(t, initialResponses, out)
	}
}

func TestGenerateReply_EarlyTurnsIntentSpecific(t *testing.T) {
	for turn := 1; turn <= 3; turn++ {
		g := newDeterministic(int64(turn))

		out := g.GenerateReply("prize!", intents(models.IntentFakePrize), turn)
		assert.Contains(t, prizeResponses, out)

		out = g.GenerateReply("job offer", intents(models.IntentJobScam), turn)
		assert.Contains(t, jobResponses, out)

		out = g.GenerateReply("hello", intents(), turn)
		assert.Contains(t, curiousResponses, out)
	}
}

func TestGenerateReply_PrizeWinsOverJob(t *testing.T) {
	g := newDeterministic(7)

	out := g.GenerateReply("msg", intents(models.IntentJobScam, models.IntentFakePrize), 2)

	assert.Contains(t, prizeResponses, out)
}

func TestGenerateReply_MidTurnsStayInExpectedCategories(t *testing.T) {
	mid := append(append(append([]string{}, financialResponses...), cautiousResponses...), engagementResponses...)

	for seed := int64(0); seed < 50; seed++ {
		g := newDeterministic(seed)
		out := g.GenerateReply("msg", intents(models.IntentUPIScam), 6)
		assert.Contains(t, mid, out)
	}
}

func TestGenerateReply_MidTurnsWithoutFinancialIntent(t *testing.T) {
	nonFinancial := append(append([]string{}, cautiousResponses...), engagementResponses...)

	for seed := int64(0); seed < 50; seed++ {
		g := newDeterministic(seed)
		out := g.GenerateReply("msg", intents(models.IntentPhishing), 5)
		assert.Contains(t, nonFinancial, out)
	}
}

func TestGenerateReply_LateTurnsStallOrProbe(t *testing.T) {
	late := append(append([]string{}, stallingResponses...), financialResponses...)

	for seed := int64(0); seed < 50; seed++ {
		g := newDeterministic(seed)
		out := g.GenerateReply("msg", intents(), 12)
		assert.Contains(t, late, out)
	}
}

func TestGenerateReply_VeryLateAlwaysWindsDown(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		g := newDeterministic(seed)
		out := g.GenerateReply("msg", intents(models.IntentFinancialFraud), 16)
		assert.Contains(t, windDownResponses, out)

		out = g.GenerateReply("msg", intents(), 40)
		assert.Contains(t, windDownResponses, out)
	}
}

func TestGenerateReply_NeverEmpty(t *testing.T) {
	g := newDeterministic(1)
	for turn := 0; turn < 30; turn++ {
		assert.NotEmpty(t, g.GenerateReply("msg", intents(), turn))
	}
}

func TestGenerateGoodbye(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		g := newDeterministic(seed)
		assert.Contains(t, goodbyeResponses, g.GenerateGoodbye())
	}
}
