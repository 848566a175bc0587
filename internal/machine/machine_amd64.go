package machine

// NumRegisters is the number of general-purpose registers captured by
// CaptureRegisters: AX, BX, CX, DX, SI, DI, BP and R8 through R15.
// SP is excluded; the stack scan covers it.
const NumRegisters = 15
