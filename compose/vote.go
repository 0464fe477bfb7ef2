package compose

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/hupe1980/agentweave/agent"
	"github.com/hupe1980/agentweave/engine"
)

// VoteResult carries the consensus outcome plus the raw material needed to
// audit it: the per-agent parsed votes and every agent's full result.
type VoteResult struct {
	// Winner is the option with the strictly highest tally. Ties break in
	// favor of the option appearing earliest in the input options list;
	// with no valid votes at all the first option wins by default.
	Winner string `json:"winner"`
	// Counts maps each voted-for option to its tally. Unparseable or
	// out-of-range answers are excluded entirely.
	Counts map[string]int `json:"counts"`
	// Votes maps agent name to the option that agent chose. Agents whose
	// answer could not be parsed are absent.
	Votes map[string]string `json:"votes"`
	// Results holds every agent's full invocation result.
	Results map[string]agent.Result `json:"results"`
}

// Vote runs a consensus poll: every spec'd agent concurrently receives the
// same voting prompt embedding the question and a 1-indexed enumeration of
// options, and must begin its answer with the number of its chosen option.
// Failed agents and unparseable answers are silently excluded from the
// tally. An empty options list yields a zero VoteResult.
func Vote(ctx context.Context, eng engine.Engine, specs []Spec, question string, options []string, optFns ...func(o *Options)) VoteResult {
	if len(options) == 0 {
		return VoteResult{}
	}

	results := Parallel(ctx, eng, specs, votePrompt(question, options), optFns...)

	vr := VoteResult{
		Counts:  make(map[string]int),
		Votes:   make(map[string]string),
		Results: results,
	}
	for name, res := range results {
		if !res.Success {
			continue
		}
		idx, ok := parseVote(res.Text, len(options))
		if !ok {
			continue
		}
		choice := options[idx-1]
		vr.Votes[name] = choice
		vr.Counts[choice]++
	}

	// Earliest option wins ties because only strictly greater tallies
	// displace the running winner.
	vr.Winner = options[0]
	best := vr.Counts[options[0]]
	for _, opt := range options[1:] {
		if vr.Counts[opt] > best {
			vr.Winner = opt
			best = vr.Counts[opt]
		}
	}
	return vr
}

// votePrompt renders the ballot delivered to every voter.
func votePrompt(question string, options []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Question: %s\n\nOptions:\n", question)
	for i, opt := range options {
		fmt.Fprintf(&b, "%d. %s\n", i+1, opt)
	}
	b.WriteString("\nRespond with the number of your chosen option. Your answer must start with that number.")
	return b.String()
}

// parseVote extracts the leading run of digits from text and maps it to a
// 1-based option index. Reports false for unparseable or out-of-range votes.
func parseVote(text string, numOptions int) (int, bool) {
	trimmed := strings.TrimSpace(text)
	end := 0
	for end < len(trimmed) && trimmed[end] >= '0' && trimmed[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(trimmed[:end])
	if err != nil || n < 1 || n > numOptions {
		return 0, false
	}
	return n, true
}
