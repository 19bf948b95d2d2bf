package vm

import "testing"

func TestExecutionContextGetOpBeyondEnd(t *testing.T) {
	c := &ExecutionContext{Code: []byte{byte(ADD)}}
	if c.GetOp(5) != STOP {
		t.Errorf("GetOp(5) = %v, want STOP", c.GetOp(5))
	}
}

func TestValidJumpdestSimple(t *testing.T) {
	// PUSH1 0x04 JUMP JUMPDEST STOP
	code := []byte{byte(PUSH1), 0x04, byte(JUMP), byte(JUMPDEST), byte(STOP)}
	c := &ExecutionContext{Code: code}
	if !c.validJumpdest(WordFromUint64(3)) {
		t.Errorf("validJumpdest(3) = false, want true")
	}
	if c.validJumpdest(WordFromUint64(2)) {
		t.Errorf("validJumpdest(2) (JUMP byte) = true, want false")
	}
}

func TestValidJumpdestInsidePushData(t *testing.T) {
	// PUSH1 0x5b (the JUMPDEST byte value, but here it's push data)
	code := []byte{byte(PUSH1), byte(JUMPDEST)}
	c := &ExecutionContext{Code: code}
	if c.validJumpdest(WordFromUint64(1)) {
		t.Errorf("validJumpdest(1) inside PUSH data = true, want false")
	}
}

func TestValidJumpdestOutOfBounds(t *testing.T) {
	c := &ExecutionContext{Code: []byte{byte(JUMPDEST)}}
	if c.validJumpdest(WordFromUint64(100)) {
		t.Errorf("validJumpdest(100) out of bounds = true, want false")
	}
}

func TestValidJumpdestNotJumpdestByte(t *testing.T) {
	c := &ExecutionContext{Code: []byte{byte(ADD), byte(STOP)}}
	if c.validJumpdest(WordFromUint64(0)) {
		t.Errorf("validJumpdest(0) on ADD byte = true, want false")
	}
}

func TestCodeSizeAndCallDataSize(t *testing.T) {
	c := &ExecutionContext{Code: []byte{1, 2, 3}, CallData: []byte{1, 2}}
	if c.CodeSize() != 3 {
		t.Errorf("CodeSize() = %d, want 3", c.CodeSize())
	}
	if c.CallDataSize() != 2 {
		t.Errorf("CallDataSize() = %d, want 2", c.CallDataSize())
	}
}
