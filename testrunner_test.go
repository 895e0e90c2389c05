package lexisphere

import "testing"

func TestLoadTestScriptRejectsBadInput(t *testing.T) {
	if _, err := LoadTestScript([]byte(`{`)); err == nil {
		t.Error("malformed JSON should fail")
	}
	if _, err := LoadTestScript([]byte(`{"steps": []}`)); err == nil {
		t.Error("empty script should fail")
	}
}

func TestTestRunnerClickAndWait(t *testing.T) {
	script := []byte(`{"steps": [
		{"action": "click", "x": 400, "y": 300},
		{"action": "wait", "frames": 3},
		{"action": "select", "node": "t2"}
	]}`)
	runner, err := LoadTestScript(script)
	if err != nil {
		t.Fatal(err)
	}

	s := newTestScene()
	center, glad, _ := buildTestGraph(s)
	s.SetTestRunner(runner)

	var selections []*Node
	s.OnSelect(func(n *Node) { selections = append(selections, n) })

	// The runner waits for injected events to drain, so the click takes
	// a queue frame plus two input frames, then 3 wait frames, then the
	// direct selection.
	for i := 0; i < 20 && !runner.Done(); i++ {
		runner.step(s)
		s.processInput()
	}

	if !runner.Done() {
		t.Fatal("script never completed")
	}
	if len(selections) != 2 {
		t.Fatalf("expected 2 selections, got %d", len(selections))
	}
	if selections[0] != center {
		t.Errorf("click selected %v, want the center node", selections[0].ID)
	}
	if selections[1] != glad {
		t.Errorf("select step picked %v, want t2", selections[1].ID)
	}
}

func TestTestRunnerSettleWaitsForTransitions(t *testing.T) {
	script := []byte(`{"steps": [
		{"action": "select", "node": "t2"},
		{"action": "settle"},
		{"action": "select", "node": "t3"}
	]}`)
	runner, err := LoadTestScript(script)
	if err != nil {
		t.Fatal(err)
	}

	s := newTestScene()
	buildTestGraph(s)
	s.SetTestRunner(runner)

	var order []string
	s.OnSelect(func(n *Node) { order = append(order, n.ID) })

	for i := 0; i < 1000 && !runner.Done(); i++ {
		runner.step(s)
		s.processInput()
		s.transitions.Tick(tickDt)
	}

	if !runner.Done() {
		t.Fatal("script never completed")
	}
	if len(order) != 2 || order[0] != "t2" || order[1] != "t3" {
		t.Fatalf("selection order = %v", order)
	}
}
