// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

// Opcode is a JVM instruction opcode.
type Opcode int

// Opcodes that events reference by name. The full mnemonic table is
// mnemonics below.
const (
	NOP             Opcode = 0
	ACONST_NULL     Opcode = 1
	ICONST_0        Opcode = 3
	BIPUSH          Opcode = 16
	SIPUSH          Opcode = 17
	LDC             Opcode = 18
	ILOAD           Opcode = 21
	ALOAD           Opcode = 25
	ISTORE          Opcode = 54
	ASTORE          Opcode = 58
	DUP             Opcode = 89
	IINC            Opcode = 132
	IFEQ            Opcode = 153
	GOTO            Opcode = 167
	RET             Opcode = 169
	TABLESWITCH     Opcode = 170
	LOOKUPSWITCH    Opcode = 171
	IRETURN         Opcode = 172
	ARETURN         Opcode = 176
	RETURN          Opcode = 177
	GETSTATIC       Opcode = 178
	PUTSTATIC       Opcode = 179
	GETFIELD        Opcode = 180
	PUTFIELD        Opcode = 181
	INVOKEVIRTUAL   Opcode = 182
	INVOKESPECIAL   Opcode = 183
	INVOKESTATIC    Opcode = 184
	INVOKEINTERFACE Opcode = 185
	INVOKEDYNAMIC   Opcode = 186
	NEW             Opcode = 187
	NEWARRAY        Opcode = 188
	ANEWARRAY       Opcode = 189
	ATHROW          Opcode = 191
	CHECKCAST       Opcode = 192
	INSTANCEOF      Opcode = 193
	MULTIANEWARRAY  Opcode = 197
	IFNULL          Opcode = 198
	IFNONNULL       Opcode = 199
)

var mnemonics = [...]string{
	"nop", "aconst_null", "iconst_m1", "iconst_0", "iconst_1", "iconst_2",
	"iconst_3", "iconst_4", "iconst_5", "lconst_0", "lconst_1", "fconst_0",
	"fconst_1", "fconst_2", "dconst_0", "dconst_1", "bipush", "sipush",
	"ldc", "ldc_w", "ldc2_w", "iload", "lload", "fload", "dload", "aload",
	"iload_0", "iload_1", "iload_2", "iload_3", "lload_0", "lload_1",
	"lload_2", "lload_3", "fload_0", "fload_1", "fload_2", "fload_3",
	"dload_0", "dload_1", "dload_2", "dload_3", "aload_0", "aload_1",
	"aload_2", "aload_3", "iaload", "laload", "faload", "daload", "aaload",
	"baload", "caload", "saload", "istore", "lstore", "fstore", "dstore",
	"astore", "istore_0", "istore_1", "istore_2", "istore_3", "lstore_0",
	"lstore_1", "lstore_2", "lstore_3", "fstore_0", "fstore_1", "fstore_2",
	"fstore_3", "dstore_0", "dstore_1", "dstore_2", "dstore_3", "astore_0",
	"astore_1", "astore_2", "astore_3", "iastore", "lastore", "fastore",
	"dastore", "aastore", "bastore", "castore", "sastore", "pop", "pop2",
	"dup", "dup_x1", "dup_x2", "dup2", "dup2_x1", "dup2_x2", "swap", "iadd",
	"ladd", "fadd", "dadd", "isub", "lsub", "fsub", "dsub", "imul", "lmul",
	"fmul", "dmul", "idiv", "ldiv", "fdiv", "ddiv", "irem", "lrem", "frem",
	"drem", "ineg", "lneg", "fneg", "dneg", "ishl", "lshl", "ishr", "lshr",
	"iushr", "lushr", "iand", "land", "ior", "lor", "ixor", "lxor", "iinc",
	"i2l", "i2f", "i2d", "l2i", "l2f", "l2d", "f2i", "f2l", "f2d", "d2i",
	"d2l", "d2f", "i2b", "i2c", "i2s", "lcmp", "fcmpl", "fcmpg", "dcmpl",
	"dcmpg", "ifeq", "ifne", "iflt", "ifge", "ifgt", "ifle", "if_icmpeq",
	"if_icmpne", "if_icmplt", "if_icmpge", "if_icmpgt", "if_icmple",
	"if_acmpeq", "if_acmpne", "goto", "jsr", "ret", "tableswitch",
	"lookupswitch", "ireturn", "lreturn", "freturn", "dreturn", "areturn",
	"return", "getstatic", "putstatic", "getfield", "putfield",
	"invokevirtual", "invokespecial", "invokestatic", "invokeinterface",
	"invokedynamic", "new", "newarray", "anewarray", "arraylength", "athrow",
	"checkcast", "instanceof", "monitorenter", "monitorexit", "wide",
	"multianewarray", "ifnull", "ifnonnull", "goto_w", "jsr_w",
}

var byMnemonic = func() map[string]Opcode {
	m := make(map[string]Opcode, len(mnemonics))
	for i, name := range mnemonics {
		m[name] = Opcode(i)
	}
	return m
}()

// String returns the lower-case mnemonic of the opcode.
func (op Opcode) String() string {
	if op < 0 || int(op) >= len(mnemonics) {
		return "unknown"
	}
	return mnemonics[op]
}

// LookupOpcode returns the opcode for a mnemonic.
func LookupOpcode(mnemonic string) (Opcode, bool) {
	op, ok := byMnemonic[mnemonic]
	return op, ok
}

// OpKind classifies opcodes by the shape of the instruction event that
// carries them.
type OpKind int

const (
	KindInvalid OpKind = iota
	KindInsn
	KindIntInsn
	KindVarInsn
	KindTypeInsn
	KindFieldInsn
	KindMethodInsn
	KindInvokeDynamic
	KindJump
	KindLdc
	KindIinc
	KindTableSwitch
	KindLookupSwitch
	KindMultiANewArray
)

// Kind returns the instruction shape of the opcode. Short forms that a
// body stream never contains (iload_0, ldc_w, wide, goto_w, ...) are
// KindInvalid.
func (op Opcode) Kind() OpKind {
	switch {
	case op >= 0 && op <= 15,
		op >= 46 && op <= 53,
		op >= 79 && op <= 131,
		op >= 133 && op <= 152,
		op >= 172 && op <= 177,
		op == 190, op == 191, op == 194, op == 195:
		return KindInsn
	case op == BIPUSH, op == SIPUSH, op == NEWARRAY:
		return KindIntInsn
	case op >= 21 && op <= 25, op >= 54 && op <= 58, op == RET:
		return KindVarInsn
	case op >= 153 && op <= 168, op == IFNULL, op == IFNONNULL:
		return KindJump
	case op == LDC:
		return KindLdc
	case op == IINC:
		return KindIinc
	case op == TABLESWITCH:
		return KindTableSwitch
	case op == LOOKUPSWITCH:
		return KindLookupSwitch
	case op >= GETSTATIC && op <= PUTFIELD:
		return KindFieldInsn
	case op >= INVOKEVIRTUAL && op <= INVOKEINTERFACE:
		return KindMethodInsn
	case op == INVOKEDYNAMIC:
		return KindInvokeDynamic
	case op == NEW, op == ANEWARRAY, op == CHECKCAST, op == INSTANCEOF:
		return KindTypeInsn
	case op == MULTIANEWARRAY:
		return KindMultiANewArray
	default:
		return KindInvalid
	}
}
