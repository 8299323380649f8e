package cil

// Opcodes from ECMA-335 Partition III. Two-byte opcodes carry the 0xFE
// prefix in the high byte.
const (
	Nop         Code = 0x00
	Break       Code = 0x01
	Ldarg0      Code = 0x02
	Ldarg1      Code = 0x03
	Ldarg2      Code = 0x04
	Ldarg3      Code = 0x05
	Ldloc0      Code = 0x06
	Ldloc1      Code = 0x07
	Ldloc2      Code = 0x08
	Ldloc3      Code = 0x09
	Stloc0      Code = 0x0A
	Stloc1      Code = 0x0B
	Stloc2      Code = 0x0C
	Stloc3      Code = 0x0D
	LdargS      Code = 0x0E
	LdargaS     Code = 0x0F
	StargS      Code = 0x10
	LdlocS      Code = 0x11
	LdlocaS     Code = 0x12
	StlocS      Code = 0x13
	Ldnull      Code = 0x14
	LdcI4_M1    Code = 0x15
	LdcI4_0     Code = 0x16
	LdcI4_1     Code = 0x17
	LdcI4_2     Code = 0x18
	LdcI4_3     Code = 0x19
	LdcI4_4     Code = 0x1A
	LdcI4_5     Code = 0x1B
	LdcI4_6     Code = 0x1C
	LdcI4_7     Code = 0x1D
	LdcI4_8     Code = 0x1E
	LdcI4S      Code = 0x1F
	LdcI4       Code = 0x20
	LdcI8       Code = 0x21
	LdcR4       Code = 0x22
	LdcR8       Code = 0x23
	Dup         Code = 0x25
	Pop         Code = 0x26
	Jmp         Code = 0x27
	Call        Code = 0x28
	Calli       Code = 0x29
	Ret         Code = 0x2A
	BrS         Code = 0x2B
	BrfalseS    Code = 0x2C
	BrtrueS     Code = 0x2D
	BeqS        Code = 0x2E
	BgeS        Code = 0x2F
	BgtS        Code = 0x30
	BleS        Code = 0x31
	BltS        Code = 0x32
	BneUnS      Code = 0x33
	BgeUnS      Code = 0x34
	BgtUnS      Code = 0x35
	BleUnS      Code = 0x36
	BltUnS      Code = 0x37
	Br          Code = 0x38
	Brfalse     Code = 0x39
	Brtrue      Code = 0x3A
	Beq         Code = 0x3B
	Bge         Code = 0x3C
	Bgt         Code = 0x3D
	Ble         Code = 0x3E
	Blt         Code = 0x3F
	BneUn       Code = 0x40
	BgeUn       Code = 0x41
	BgtUn       Code = 0x42
	BleUn       Code = 0x43
	BltUn       Code = 0x44
	Switch      Code = 0x45
	LdindI1     Code = 0x46
	LdindU1     Code = 0x47
	LdindI2     Code = 0x48
	LdindU2     Code = 0x49
	LdindI4     Code = 0x4A
	LdindU4     Code = 0x4B
	LdindI8     Code = 0x4C
	LdindI      Code = 0x4D
	LdindR4     Code = 0x4E
	LdindR8     Code = 0x4F
	LdindRef    Code = 0x50
	StindRef    Code = 0x51
	StindI1     Code = 0x52
	StindI2     Code = 0x53
	StindI4     Code = 0x54
	StindI8     Code = 0x55
	StindR4     Code = 0x56
	StindR8     Code = 0x57
	Add         Code = 0x58
	Sub         Code = 0x59
	Mul         Code = 0x5A
	Div         Code = 0x5B
	DivUn       Code = 0x5C
	Rem         Code = 0x5D
	RemUn       Code = 0x5E
	And         Code = 0x5F
	Or          Code = 0x60
	Xor         Code = 0x61
	Shl         Code = 0x62
	Shr         Code = 0x63
	ShrUn       Code = 0x64
	Neg         Code = 0x65
	Not         Code = 0x66
	ConvI1      Code = 0x67
	ConvI2      Code = 0x68
	ConvI4      Code = 0x69
	ConvI8      Code = 0x6A
	ConvR4      Code = 0x6B
	ConvR8      Code = 0x6C
	ConvU4      Code = 0x6D
	ConvU8      Code = 0x6E
	Callvirt    Code = 0x6F
	Cpobj       Code = 0x70
	Ldobj       Code = 0x71
	Ldstr       Code = 0x72
	Newobj      Code = 0x73
	Castclass   Code = 0x74
	Isinst      Code = 0x75
	ConvRUn     Code = 0x76
	Unbox       Code = 0x79
	Throw       Code = 0x7A
	Ldfld       Code = 0x7B
	Ldflda      Code = 0x7C
	Stfld       Code = 0x7D
	Ldsfld      Code = 0x7E
	Ldsflda     Code = 0x7F
	Stsfld      Code = 0x80
	Stobj       Code = 0x81
	ConvOvfI1Un Code = 0x82
	ConvOvfI2Un Code = 0x83
	ConvOvfI4Un Code = 0x84
	ConvOvfI8Un Code = 0x85
	ConvOvfU1Un Code = 0x86
	ConvOvfU2Un Code = 0x87
	ConvOvfU4Un Code = 0x88
	ConvOvfU8Un Code = 0x89
	ConvOvfIUn  Code = 0x8A
	ConvOvfUUn  Code = 0x8B
	Box         Code = 0x8C
	Newarr      Code = 0x8D
	Ldlen       Code = 0x8E
	Ldelema     Code = 0x8F
	LdelemI1    Code = 0x90
	LdelemU1    Code = 0x91
	LdelemI2    Code = 0x92
	LdelemU2    Code = 0x93
	LdelemI4    Code = 0x94
	LdelemU4    Code = 0x95
	LdelemI8    Code = 0x96
	LdelemI     Code = 0x97
	LdelemR4    Code = 0x98
	LdelemR8    Code = 0x99
	LdelemRef   Code = 0x9A
	StelemI     Code = 0x9B
	StelemI1    Code = 0x9C
	StelemI2    Code = 0x9D
	StelemI4    Code = 0x9E
	StelemI8    Code = 0x9F
	StelemR4    Code = 0xA0
	StelemR8    Code = 0xA1
	StelemRef   Code = 0xA2
	Ldelem      Code = 0xA3
	Stelem      Code = 0xA4
	UnboxAny    Code = 0xA5
	ConvOvfI1   Code = 0xB3
	ConvOvfU1   Code = 0xB4
	ConvOvfI2   Code = 0xB5
	ConvOvfU2   Code = 0xB6
	ConvOvfI4   Code = 0xB7
	ConvOvfU4   Code = 0xB8
	ConvOvfI8   Code = 0xB9
	ConvOvfU8   Code = 0xBA
	Refanyval   Code = 0xC2
	Ckfinite    Code = 0xC3
	Mkrefany    Code = 0xC6
	Ldtoken     Code = 0xD0
	ConvU2      Code = 0xD1
	ConvU1      Code = 0xD2
	ConvI       Code = 0xD3
	ConvOvfI    Code = 0xD4
	ConvOvfU    Code = 0xD5
	AddOvf      Code = 0xD6
	AddOvfUn    Code = 0xD7
	MulOvf      Code = 0xD8
	MulOvfUn    Code = 0xD9
	SubOvf      Code = 0xDA
	SubOvfUn    Code = 0xDB
	Endfinally  Code = 0xDC
	Leave       Code = 0xDD
	LeaveS      Code = 0xDE
	StindI      Code = 0xDF
	ConvU       Code = 0xE0
	Arglist     Code = 0xFE00
	Ceq         Code = 0xFE01
	Cgt         Code = 0xFE02
	CgtUn       Code = 0xFE03
	Clt         Code = 0xFE04
	CltUn       Code = 0xFE05
	Ldftn       Code = 0xFE06
	Ldvirtftn   Code = 0xFE07
	Ldarg       Code = 0xFE09
	Ldarga      Code = 0xFE0A
	Starg       Code = 0xFE0B
	Ldloc       Code = 0xFE0C
	Ldloca      Code = 0xFE0D
	Stloc       Code = 0xFE0E
	Localloc    Code = 0xFE0F
	Endfilter   Code = 0xFE11
	Unaligned   Code = 0xFE12
	Volatile    Code = 0xFE13
	Tail        Code = 0xFE14
	Initobj     Code = 0xFE15
	Constrained Code = 0xFE16
	Cpblk       Code = 0xFE17
	Initblk     Code = 0xFE18
	No          Code = 0xFE19
	Rethrow     Code = 0xFE1A
	Sizeof      Code = 0xFE1C
	Refanytype  Code = 0xFE1D
	Readonly    Code = 0xFE1E
)

var opcodeTable = []OpCode{
	{Nop, "nop", OperandNone, FlowNext},
	{Break, "break", OperandNone, FlowBreak},
	{Ldarg0, "ldarg.0", OperandNone, FlowNext},
	{Ldarg1, "ldarg.1", OperandNone, FlowNext},
	{Ldarg2, "ldarg.2", OperandNone, FlowNext},
	{Ldarg3, "ldarg.3", OperandNone, FlowNext},
	{Ldloc0, "ldloc.0", OperandNone, FlowNext},
	{Ldloc1, "ldloc.1", OperandNone, FlowNext},
	{Ldloc2, "ldloc.2", OperandNone, FlowNext},
	{Ldloc3, "ldloc.3", OperandNone, FlowNext},
	{Stloc0, "stloc.0", OperandNone, FlowNext},
	{Stloc1, "stloc.1", OperandNone, FlowNext},
	{Stloc2, "stloc.2", OperandNone, FlowNext},
	{Stloc3, "stloc.3", OperandNone, FlowNext},
	{LdargS, "ldarg.s", OperandShortInlineVar, FlowNext},
	{LdargaS, "ldarga.s", OperandShortInlineVar, FlowNext},
	{StargS, "starg.s", OperandShortInlineVar, FlowNext},
	{LdlocS, "ldloc.s", OperandShortInlineVar, FlowNext},
	{LdlocaS, "ldloca.s", OperandShortInlineVar, FlowNext},
	{StlocS, "stloc.s", OperandShortInlineVar, FlowNext},
	{Ldnull, "ldnull", OperandNone, FlowNext},
	{LdcI4_M1, "ldc.i4.m1", OperandNone, FlowNext},
	{LdcI4_0, "ldc.i4.0", OperandNone, FlowNext},
	{LdcI4_1, "ldc.i4.1", OperandNone, FlowNext},
	{LdcI4_2, "ldc.i4.2", OperandNone, FlowNext},
	{LdcI4_3, "ldc.i4.3", OperandNone, FlowNext},
	{LdcI4_4, "ldc.i4.4", OperandNone, FlowNext},
	{LdcI4_5, "ldc.i4.5", OperandNone, FlowNext},
	{LdcI4_6, "ldc.i4.6", OperandNone, FlowNext},
	{LdcI4_7, "ldc.i4.7", OperandNone, FlowNext},
	{LdcI4_8, "ldc.i4.8", OperandNone, FlowNext},
	{LdcI4S, "ldc.i4.s", OperandShortInlineI, FlowNext},
	{LdcI4, "ldc.i4", OperandInlineI, FlowNext},
	{LdcI8, "ldc.i8", OperandInlineI8, FlowNext},
	{LdcR4, "ldc.r4", OperandShortInlineR, FlowNext},
	{LdcR8, "ldc.r8", OperandInlineR, FlowNext},
	{Dup, "dup", OperandNone, FlowNext},
	{Pop, "pop", OperandNone, FlowNext},
	{Jmp, "jmp", OperandInlineMethod, FlowCall},
	{Call, "call", OperandInlineMethod, FlowCall},
	{Calli, "calli", OperandInlineSig, FlowCall},
	{Ret, "ret", OperandNone, FlowReturn},
	{BrS, "br.s", OperandShortInlineBrTarget, FlowBranch},
	{BrfalseS, "brfalse.s", OperandShortInlineBrTarget, FlowCondBranch},
	{BrtrueS, "brtrue.s", OperandShortInlineBrTarget, FlowCondBranch},
	{BeqS, "beq.s", OperandShortInlineBrTarget, FlowCondBranch},
	{BgeS, "bge.s", OperandShortInlineBrTarget, FlowCondBranch},
	{BgtS, "bgt.s", OperandShortInlineBrTarget, FlowCondBranch},
	{BleS, "ble.s", OperandShortInlineBrTarget, FlowCondBranch},
	{BltS, "blt.s", OperandShortInlineBrTarget, FlowCondBranch},
	{BneUnS, "bne.un.s", OperandShortInlineBrTarget, FlowCondBranch},
	{BgeUnS, "bge.un.s", OperandShortInlineBrTarget, FlowCondBranch},
	{BgtUnS, "bgt.un.s", OperandShortInlineBrTarget, FlowCondBranch},
	{BleUnS, "ble.un.s", OperandShortInlineBrTarget, FlowCondBranch},
	{BltUnS, "blt.un.s", OperandShortInlineBrTarget, FlowCondBranch},
	{Br, "br", OperandInlineBrTarget, FlowBranch},
	{Brfalse, "brfalse", OperandInlineBrTarget, FlowCondBranch},
	{Brtrue, "brtrue", OperandInlineBrTarget, FlowCondBranch},
	{Beq, "beq", OperandInlineBrTarget, FlowCondBranch},
	{Bge, "bge", OperandInlineBrTarget, FlowCondBranch},
	{Bgt, "bgt", OperandInlineBrTarget, FlowCondBranch},
	{Ble, "ble", OperandInlineBrTarget, FlowCondBranch},
	{Blt, "blt", OperandInlineBrTarget, FlowCondBranch},
	{BneUn, "bne.un", OperandInlineBrTarget, FlowCondBranch},
	{BgeUn, "bge.un", OperandInlineBrTarget, FlowCondBranch},
	{BgtUn, "bgt.un", OperandInlineBrTarget, FlowCondBranch},
	{BleUn, "ble.un", OperandInlineBrTarget, FlowCondBranch},
	{BltUn, "blt.un", OperandInlineBrTarget, FlowCondBranch},
	{Switch, "switch", OperandInlineSwitch, FlowCondBranch},
	{LdindI1, "ldind.i1", OperandNone, FlowNext},
	{LdindU1, "ldind.u1", OperandNone, FlowNext},
	{LdindI2, "ldind.i2", OperandNone, FlowNext},
	{LdindU2, "ldind.u2", OperandNone, FlowNext},
	{LdindI4, "ldind.i4", OperandNone, FlowNext},
	{LdindU4, "ldind.u4", OperandNone, FlowNext},
	{LdindI8, "ldind.i8", OperandNone, FlowNext},
	{LdindI, "ldind.i", OperandNone, FlowNext},
	{LdindR4, "ldind.r4", OperandNone, FlowNext},
	{LdindR8, "ldind.r8", OperandNone, FlowNext},
	{LdindRef, "ldind.ref", OperandNone, FlowNext},
	{StindRef, "stind.ref", OperandNone, FlowNext},
	{StindI1, "stind.i1", OperandNone, FlowNext},
	{StindI2, "stind.i2", OperandNone, FlowNext},
	{StindI4, "stind.i4", OperandNone, FlowNext},
	{StindI8, "stind.i8", OperandNone, FlowNext},
	{StindR4, "stind.r4", OperandNone, FlowNext},
	{StindR8, "stind.r8", OperandNone, FlowNext},
	{Add, "add", OperandNone, FlowNext},
	{Sub, "sub", OperandNone, FlowNext},
	{Mul, "mul", OperandNone, FlowNext},
	{Div, "div", OperandNone, FlowNext},
	{DivUn, "div.un", OperandNone, FlowNext},
	{Rem, "rem", OperandNone, FlowNext},
	{RemUn, "rem.un", OperandNone, FlowNext},
	{And, "and", OperandNone, FlowNext},
	{Or, "or", OperandNone, FlowNext},
	{Xor, "xor", OperandNone, FlowNext},
	{Shl, "shl", OperandNone, FlowNext},
	{Shr, "shr", OperandNone, FlowNext},
	{ShrUn, "shr.un", OperandNone, FlowNext},
	{Neg, "neg", OperandNone, FlowNext},
	{Not, "not", OperandNone, FlowNext},
	{ConvI1, "conv.i1", OperandNone, FlowNext},
	{ConvI2, "conv.i2", OperandNone, FlowNext},
	{ConvI4, "conv.i4", OperandNone, FlowNext},
	{ConvI8, "conv.i8", OperandNone, FlowNext},
	{ConvR4, "conv.r4", OperandNone, FlowNext},
	{ConvR8, "conv.r8", OperandNone, FlowNext},
	{ConvU4, "conv.u4", OperandNone, FlowNext},
	{ConvU8, "conv.u8", OperandNone, FlowNext},
	{Callvirt, "callvirt", OperandInlineMethod, FlowCall},
	{Cpobj, "cpobj", OperandInlineType, FlowNext},
	{Ldobj, "ldobj", OperandInlineType, FlowNext},
	{Ldstr, "ldstr", OperandInlineString, FlowNext},
	{Newobj, "newobj", OperandInlineMethod, FlowCall},
	{Castclass, "castclass", OperandInlineType, FlowNext},
	{Isinst, "isinst", OperandInlineType, FlowNext},
	{ConvRUn, "conv.r.un", OperandNone, FlowNext},
	{Unbox, "unbox", OperandInlineType, FlowNext},
	{Throw, "throw", OperandNone, FlowThrow},
	{Ldfld, "ldfld", OperandInlineField, FlowNext},
	{Ldflda, "ldflda", OperandInlineField, FlowNext},
	{Stfld, "stfld", OperandInlineField, FlowNext},
	{Ldsfld, "ldsfld", OperandInlineField, FlowNext},
	{Ldsflda, "ldsflda", OperandInlineField, FlowNext},
	{Stsfld, "stsfld", OperandInlineField, FlowNext},
	{Stobj, "stobj", OperandInlineType, FlowNext},
	{ConvOvfI1Un, "conv.ovf.i1.un", OperandNone, FlowNext},
	{ConvOvfI2Un, "conv.ovf.i2.un", OperandNone, FlowNext},
	{ConvOvfI4Un, "conv.ovf.i4.un", OperandNone, FlowNext},
	{ConvOvfI8Un, "conv.ovf.i8.un", OperandNone, FlowNext},
	{ConvOvfU1Un, "conv.ovf.u1.un", OperandNone, FlowNext},
	{ConvOvfU2Un, "conv.ovf.u2.un", OperandNone, FlowNext},
	{ConvOvfU4Un, "conv.ovf.u4.un", OperandNone, FlowNext},
	{ConvOvfU8Un, "conv.ovf.u8.un", OperandNone, FlowNext},
	{ConvOvfIUn, "conv.ovf.i.un", OperandNone, FlowNext},
	{ConvOvfUUn, "conv.ovf.u.un", OperandNone, FlowNext},
	{Box, "box", OperandInlineType, FlowNext},
	{Newarr, "newarr", OperandInlineType, FlowNext},
	{Ldlen, "ldlen", OperandNone, FlowNext},
	{Ldelema, "ldelema", OperandInlineType, FlowNext},
	{LdelemI1, "ldelem.i1", OperandNone, FlowNext},
	{LdelemU1, "ldelem.u1", OperandNone, FlowNext},
	{LdelemI2, "ldelem.i2", OperandNone, FlowNext},
	{LdelemU2, "ldelem.u2", OperandNone, FlowNext},
	{LdelemI4, "ldelem.i4", OperandNone, FlowNext},
	{LdelemU4, "ldelem.u4", OperandNone, FlowNext},
	{LdelemI8, "ldelem.i8", OperandNone, FlowNext},
	{LdelemI, "ldelem.i", OperandNone, FlowNext},
	{LdelemR4, "ldelem.r4", OperandNone, FlowNext},
	{LdelemR8, "ldelem.r8", OperandNone, FlowNext},
	{LdelemRef, "ldelem.ref", OperandNone, FlowNext},
	{StelemI, "stelem.i", OperandNone, FlowNext},
	{StelemI1, "stelem.i1", OperandNone, FlowNext},
	{StelemI2, "stelem.i2", OperandNone, FlowNext},
	{StelemI4, "stelem.i4", OperandNone, FlowNext},
	{StelemI8, "stelem.i8", OperandNone, FlowNext},
	{StelemR4, "stelem.r4", OperandNone, FlowNext},
	{StelemR8, "stelem.r8", OperandNone, FlowNext},
	{StelemRef, "stelem.ref", OperandNone, FlowNext},
	{Ldelem, "ldelem", OperandInlineType, FlowNext},
	{Stelem, "stelem", OperandInlineType, FlowNext},
	{UnboxAny, "unbox.any", OperandInlineType, FlowNext},
	{ConvOvfI1, "conv.ovf.i1", OperandNone, FlowNext},
	{ConvOvfU1, "conv.ovf.u1", OperandNone, FlowNext},
	{ConvOvfI2, "conv.ovf.i2", OperandNone, FlowNext},
	{ConvOvfU2, "conv.ovf.u2", OperandNone, FlowNext},
	{ConvOvfI4, "conv.ovf.i4", OperandNone, FlowNext},
	{ConvOvfU4, "conv.ovf.u4", OperandNone, FlowNext},
	{ConvOvfI8, "conv.ovf.i8", OperandNone, FlowNext},
	{ConvOvfU8, "conv.ovf.u8", OperandNone, FlowNext},
	{Refanyval, "refanyval", OperandInlineType, FlowNext},
	{Ckfinite, "ckfinite", OperandNone, FlowNext},
	{Mkrefany, "mkrefany", OperandInlineType, FlowNext},
	{Ldtoken, "ldtoken", OperandInlineTok, FlowNext},
	{ConvU2, "conv.u2", OperandNone, FlowNext},
	{ConvU1, "conv.u1", OperandNone, FlowNext},
	{ConvI, "conv.i", OperandNone, FlowNext},
	{ConvOvfI, "conv.ovf.i", OperandNone, FlowNext},
	{ConvOvfU, "conv.ovf.u", OperandNone, FlowNext},
	{AddOvf, "add.ovf", OperandNone, FlowNext},
	{AddOvfUn, "add.ovf.un", OperandNone, FlowNext},
	{MulOvf, "mul.ovf", OperandNone, FlowNext},
	{MulOvfUn, "mul.ovf.un", OperandNone, FlowNext},
	{SubOvf, "sub.ovf", OperandNone, FlowNext},
	{SubOvfUn, "sub.ovf.un", OperandNone, FlowNext},
	{Endfinally, "endfinally", OperandNone, FlowReturn},
	{Leave, "leave", OperandInlineBrTarget, FlowBranch},
	{LeaveS, "leave.s", OperandShortInlineBrTarget, FlowBranch},
	{StindI, "stind.i", OperandNone, FlowNext},
	{ConvU, "conv.u", OperandNone, FlowNext},
	{Arglist, "arglist", OperandNone, FlowNext},
	{Ceq, "ceq", OperandNone, FlowNext},
	{Cgt, "cgt", OperandNone, FlowNext},
	{CgtUn, "cgt.un", OperandNone, FlowNext},
	{Clt, "clt", OperandNone, FlowNext},
	{CltUn, "clt.un", OperandNone, FlowNext},
	{Ldftn, "ldftn", OperandInlineMethod, FlowNext},
	{Ldvirtftn, "ldvirtftn", OperandInlineMethod, FlowNext},
	{Ldarg, "ldarg", OperandInlineVar, FlowNext},
	{Ldarga, "ldarga", OperandInlineVar, FlowNext},
	{Starg, "starg", OperandInlineVar, FlowNext},
	{Ldloc, "ldloc", OperandInlineVar, FlowNext},
	{Ldloca, "ldloca", OperandInlineVar, FlowNext},
	{Stloc, "stloc", OperandInlineVar, FlowNext},
	{Localloc, "localloc", OperandNone, FlowNext},
	{Endfilter, "endfilter", OperandNone, FlowReturn},
	{Unaligned, "unaligned.", OperandShortInlineI, FlowMeta},
	{Volatile, "volatile.", OperandNone, FlowMeta},
	{Tail, "tail.", OperandNone, FlowMeta},
	{Initobj, "initobj", OperandInlineType, FlowNext},
	{Constrained, "constrained.", OperandInlineType, FlowMeta},
	{Cpblk, "cpblk", OperandNone, FlowNext},
	{Initblk, "initblk", OperandNone, FlowNext},
	{No, "no.", OperandShortInlineI, FlowMeta},
	{Rethrow, "rethrow", OperandNone, FlowThrow},
	{Sizeof, "sizeof", OperandInlineType, FlowNext},
	{Refanytype, "refanytype", OperandNone, FlowNext},
	{Readonly, "readonly.", OperandNone, FlowMeta},
}
