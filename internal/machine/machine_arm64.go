package machine

// NumRegisters is the number of slots filled by CaptureRegisters: R0
// through R26, with the reserved platform register R18 stored as zero.
// R27 is the assembler temporary, R28 holds the goroutine descriptor and
// RSP is covered by the stack scan.
const NumRegisters = 27
