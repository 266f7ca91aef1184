package circuit

import "testing"

func TestWires_At_Broadcast(t *testing.T) {
	ws := WireList(3, 1)

	tests := []struct {
		i    int
		want int
	}{
		{0, 3},
		{1, 1},
		{2, 1}, // past the end: repeat the last element
		{9, 1},
	}
	for _, tt := range tests {
		if got := ws.At(tt.i); got != tt.want {
			t.Errorf("At(%d) = %d, want %d", tt.i, got, tt.want)
		}
	}
}

func TestWires_Zero(t *testing.T) {
	var ws Wires
	if !ws.IsEmpty() {
		t.Error("zero Wires should be empty")
	}
	if ws.Len() != 0 {
		t.Errorf("Len() = %d, want 0", ws.Len())
	}
}

func TestWireList_Copies(t *testing.T) {
	src := []int{0, 1}
	ws := WireList(src...)
	src[0] = 9
	if got := ws.At(0); got != 0 {
		t.Errorf("At(0) = %d after mutating source, want 0", got)
	}
}

func TestBroadcastLen(t *testing.T) {
	if got := broadcastLen(Wire(0), WireList(1, 2, 3)); got != 3 {
		t.Errorf("broadcastLen() = %d, want 3", got)
	}
	if got := broadcastLen(); got != 0 {
		t.Errorf("broadcastLen() = %d, want 0", got)
	}
}
