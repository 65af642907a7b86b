package push

import "net/http"

// Result — исход отправки на один push-токен
type Result struct {
	Token  string
	Status int
	Reason string
	APNsID string
	Err    error
}

func (r Result) Success() bool { return r.Err == nil && r.Status == http.StatusOK }

// Unregistered — шлюз считает токен недействительным навсегда (410)
func (r Result) Unregistered() bool { return r.Status == http.StatusGone }

// BatchResult — результаты в порядке входных токенов
type BatchResult struct {
	Results []Result
}

func (b BatchResult) Succeeded() int {
	n := 0
	for _, r := range b.Results {
		if r.Success() {
			n++
		}
	}
	return n
}

func (b BatchResult) Failed() int { return len(b.Results) - b.Succeeded() }

// UnregisteredTokens — токены, которые вызывающему стоит отписать
func (b BatchResult) UnregisteredTokens() []string {
	var out []string
	for _, r := range b.Results {
		if r.Unregistered() {
			out = append(out, r.Token)
		}
	}
	return out
}
