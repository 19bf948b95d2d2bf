package vm

import "testing"

func TestOpCodeString(t *testing.T) {
	cases := map[OpCode]string{
		ADD:    "ADD",
		PUSH1:  "PUSH1",
		DUP16:  "DUP16",
		SWAP1:  "SWAP1",
		LOG4:   "LOG4",
		SSTORE: "SSTORE",
	}
	for op, want := range cases {
		if got := op.String(); got != want {
			t.Errorf("OpCode(%x).String() = %q, want %q", byte(op), got, want)
		}
	}
}

func TestOpCodeStringUnassigned(t *testing.T) {
	got := OpCode(0x0c).String()
	want := "opcode 0xc"
	if got != want {
		t.Errorf("OpCode(0x0c).String() = %q, want %q", got, want)
	}
}

func TestIsPushAndPushSize(t *testing.T) {
	if !PUSH1.IsPush() || PUSH1.PushSize() != 1 {
		t.Errorf("PUSH1: IsPush=%v PushSize=%d, want true,1", PUSH1.IsPush(), PUSH1.PushSize())
	}
	if !PUSH32.IsPush() || PUSH32.PushSize() != 32 {
		t.Errorf("PUSH32: IsPush=%v PushSize=%d, want true,32", PUSH32.IsPush(), PUSH32.PushSize())
	}
	if ADD.IsPush() {
		t.Errorf("ADD.IsPush() = true, want false")
	}
}

func TestIsDupAndDupN(t *testing.T) {
	if !DUP1.IsDup() || DUP1.DupN() != 1 {
		t.Errorf("DUP1: IsDup=%v DupN=%d, want true,1", DUP1.IsDup(), DUP1.DupN())
	}
	if !DUP16.IsDup() || DUP16.DupN() != 16 {
		t.Errorf("DUP16: IsDup=%v DupN=%d, want true,16", DUP16.IsDup(), DUP16.DupN())
	}
}

func TestIsSwapAndSwapN(t *testing.T) {
	if !SWAP1.IsSwap() || SWAP1.SwapN() != 1 {
		t.Errorf("SWAP1: IsSwap=%v SwapN=%d, want true,1", SWAP1.IsSwap(), SWAP1.SwapN())
	}
	if !SWAP16.IsSwap() || SWAP16.SwapN() != 16 {
		t.Errorf("SWAP16: IsSwap=%v SwapN=%d, want true,16", SWAP16.IsSwap(), SWAP16.SwapN())
	}
}

func TestIsLogAndLogTopics(t *testing.T) {
	if !LOG0.IsLog() || LOG0.LogTopics() != 0 {
		t.Errorf("LOG0: IsLog=%v LogTopics=%d, want true,0", LOG0.IsLog(), LOG0.LogTopics())
	}
	if !LOG4.IsLog() || LOG4.LogTopics() != 4 {
		t.Errorf("LOG4: IsLog=%v LogTopics=%d, want true,4", LOG4.IsLog(), LOG4.LogTopics())
	}
}
