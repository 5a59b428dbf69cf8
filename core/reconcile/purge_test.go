package reconcile

import (
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

func botMessage(id string, age time.Duration) *discordgo.Message {
	return &discordgo.Message{
		ID:        id,
		Author:    &discordgo.User{ID: "bot"},
		Timestamp: fixedNow.Add(-age),
	}
}

func userMessage(id string) *discordgo.Message {
	return &discordgo.Message{
		ID:        id,
		Author:    &discordgo.User{ID: "someone"},
		Timestamp: fixedNow.Add(-time.Hour),
	}
}

// page builds n messages with descending IDs starting at top, newest first.
func page(top, n int, mk func(id string) *discordgo.Message) []*discordgo.Message {
	messages := make([]*discordgo.Message, 0, n)
	for i := 0; i < n; i++ {
		messages = append(messages, mk(fmt.Sprintf("%d", top-i)))
	}
	return messages
}

func TestPlanPurge(t *testing.T) {
	day := 24 * time.Hour
	messages := []*discordgo.Message{
		botMessage("m10", 10*day),
		userMessage("u1"),
		botMessage("m20", 20*day),
		{ID: "orphan"},
		nil,
	}

	plan := PlanPurge(messages, "bot", fixedNow)
	require.Len(t, plan.Bulk, 1)
	require.Len(t, plan.Single, 1)
	assert.Equal(t, "m10", plan.Bulk[0].ID)
	assert.Equal(t, "m20", plan.Single[0].ID)
	assert.False(t, plan.Empty())
	assert.Equal(t, []string{"m10", "m20"}, messageIDs(plan.Messages()))
}

func TestPlanPurge_NoBotMessages(t *testing.T) {
	plan := PlanPurge([]*discordgo.Message{userMessage("1"), userMessage("2")}, "bot", fixedNow)
	assert.True(t, plan.Empty())
}

func TestOldestID(t *testing.T) {
	messages := []*discordgo.Message{
		{ID: "1100"},
		{ID: "999"},
		{ID: "1050"},
	}
	assert.Equal(t, "999", oldestID(messages))
	assert.Equal(t, "", oldestID(nil))
}

func TestParsePurgeScope(t *testing.T) {
	tests := []struct {
		in      string
		want    PurgeScope
		wantErr bool
	}{
		{"", ScopeRecent, false},
		{"history", ScopeHistory, false},
		{"recent", ScopeRecent, false},
		{"everything", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePurgeScope(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfig_ChannelList(t *testing.T) {
	assert.Equal(t, []string{"rules", "faq"}, Config{Channels: " rules  faq "}.ChannelList())
	assert.Empty(t, Config{}.ChannelList())
}
