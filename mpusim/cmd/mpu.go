// Copyright (c) The armv8m-mpu authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package cmd

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/coretrust/armv8m-mpu/mem"
	"github.com/coretrust/armv8m-mpu/mpu"
)

func init() {
	Add(Cmd{
		Name: "mpu",
		Help: "show MPU configuration",
		Fn:   statusCmd,
	})

	Add(Cmd{
		Name:    "enable",
		Args:    1,
		Pattern: regexp.MustCompile(`^enable ?([a-z,]+)?$`),
		Syntax:  "(privdef|hfnmi)?",
		Help:    "enable MPU (no argument: default-deny)",
		Fn:      enableCmd,
	})

	Add(Cmd{
		Name: "disable",
		Help: "disable MPU",
		Fn:   disableCmd,
	})

	Add(Cmd{
		Name:    "attr",
		Args:    2,
		Pattern: regexp.MustCompile(`^attr ([0-7]) ([[:xdigit:]]{1,2})$`),
		Syntax:  "<slot> <hex attr>",
		Help:    "set memory attribute slot",
		Fn:      attrCmd,
	})

	Add(Cmd{
		Name:    "region",
		Args:    5,
		Pattern: regexp.MustCompile(`^region (\d+) ([[:xdigit:]]+) ([[:xdigit:]]+) ([0-7]) ?([a-z,]+)?$`),
		Syntax:  "<n> <hex base> <hex limit> <slot> (ro,np,xn,os,is)?",
		Help:    "configure and enable region",
		Fn:      regionCmd,
	})

	Add(Cmd{
		Name:    "clear",
		Args:    1,
		Pattern: regexp.MustCompile(`^clear (\d+)$`),
		Syntax:  "<n>",
		Help:    "clear region",
		Fn:      clearCmd,
	})

	Add(Cmd{
		Name: "load",
		Help: "reload example protection layout",
		Fn:   loadCmd,
	})
}

var shNames = map[int]string{
	mpu.SH_NONE:  "none",
	mpu.SH_OUTER: "outer",
	mpu.SH_INNER: "inner",
}

var deviceNames = map[int]string{
	mpu.DEVICE_nGnRnE: "nGnRnE",
	mpu.DEVICE_nGnRE:  "nGnRE",
	mpu.DEVICE_nGRE:   "nGRE",
	mpu.DEVICE_GRE:    "GRE",
}

func policyDesc(p mpu.CachePolicy) string {
	if p == (mpu.CachePolicy{}) {
		return "NC"
	}

	var flags []string

	if p.NonTransient {
		flags = append(flags, "NT")
	}

	if p.WriteBack {
		flags = append(flags, "WB")
	} else {
		flags = append(flags, "WT")
	}

	if p.ReadAllocate {
		flags = append(flags, "RA")
	}

	if p.WriteAllocate {
		flags = append(flags, "WA")
	}

	return strings.Join(flags, "+")
}

func attrDesc(attr byte) string {
	if mpu.IsDeviceAttr(attr) {
		return "device " + deviceNames[mpu.DeviceAttrKind(attr)]
	}

	outer, inner := mpu.CachePolicies(attr)

	return fmt.Sprintf("normal outer:%s inner:%s", policyDesc(outer), policyDesc(inner))
}

func statusCmd(_ *term.Terminal, _ []string) (res string, err error) {
	var buf bytes.Buffer

	enabled := 0

	if Target.Enabled() {
		enabled = 1
	}

	fmt.Fprintf(&buf, "enable:%d\n\n", enabled)

	buf.WriteString("| slot | attr | type                            |\n")
	buf.WriteString("|------|------|---------------------------------|\n")

	for i := 0; i < 8; i++ {
		attr := Target.MemAttr(i)
		fmt.Fprintf(&buf, "| %4d | 0x%.2x | %-31s |\n", i, attr, attrDesc(attr))
	}

	buf.WriteString("\n")
	buf.WriteString("| region | base       | limit      | slot | sh    | ro | np | xn | en |\n")
	buf.WriteString("|--------|------------|------------|------|-------|----|----|----|----|\n")

	for n := 0; n < Regions; n++ {
		r := Target.Region(n)

		fmt.Fprintf(&buf, "| %6d | 0x%.8x | 0x%.8x | %4d | %-5s | %2s | %2s | %2s | %2s |\n",
			n, r.Base(), r.Limit(), r.AttrIndex(), shNames[r.Shareability()],
			mark(r.ReadOnly()), mark(r.NonPrivileged()), mark(r.ExecuteNever()), mark(r.Enabled()),
		)
	}

	return buf.String(), nil
}

func mark(set bool) string {
	if set {
		return "*"
	}

	return ""
}

func enableCmd(_ *term.Terminal, arg []string) (res string, err error) {
	var defaults uint32

	for _, flag := range strings.Split(arg[0], ",") {
		switch flag {
		case "privdef":
			defaults |= mpu.PRIVDEFENA
		case "hfnmi":
			defaults |= mpu.HFNMIENA
		case "":
		default:
			return "", fmt.Errorf("invalid flag %q", flag)
		}
	}

	Target.Enable(defaults)

	return "enabled", nil
}

func disableCmd(_ *term.Terminal, _ []string) (res string, err error) {
	Target.Disable()

	return "disabled", nil
}

func attrCmd(_ *term.Terminal, arg []string) (res string, err error) {
	idx, err := strconv.Atoi(arg[0])

	if err != nil {
		return "", fmt.Errorf("invalid slot, %v", err)
	}

	attr, err := strconv.ParseUint(arg[1], 16, 8)

	if err != nil {
		return "", fmt.Errorf("invalid attribute, %v", err)
	}

	Target.SetMemAttr(idx, byte(attr))

	return fmt.Sprintf("slot %d = %s", idx, attrDesc(byte(attr))), nil
}

func regionCmd(_ *term.Terminal, arg []string) (res string, err error) {
	var ro, np, xn bool

	n, err := strconv.Atoi(arg[0])

	if err != nil {
		return "", fmt.Errorf("invalid region, %v", err)
	}

	if n >= Regions {
		return "", fmt.Errorf("region must be < %d", Regions)
	}

	base, err := strconv.ParseUint(arg[1], 16, 32)

	if err != nil {
		return "", fmt.Errorf("invalid base, %v", err)
	}

	limit, err := strconv.ParseUint(arg[2], 16, 32)

	if err != nil {
		return "", fmt.Errorf("invalid limit, %v", err)
	}

	if base > limit {
		return "", fmt.Errorf("base must be <= limit")
	}

	idx, err := strconv.Atoi(arg[3])

	if err != nil {
		return "", fmt.Errorf("invalid slot, %v", err)
	}

	sh := mpu.SH_NONE

	for _, flag := range strings.Split(arg[4], ",") {
		switch flag {
		case "ro":
			ro = true
		case "np":
			np = true
		case "xn":
			xn = true
		case "os":
			sh = mpu.SH_OUTER
		case "is":
			sh = mpu.SH_INNER
		case "":
		default:
			return "", fmt.Errorf("invalid flag %q", flag)
		}
	}

	Target.SetRegion(n, mpu.RBAR(uint32(base), sh, ro, np, xn), mpu.RLAR(uint32(limit), idx))

	return fmt.Sprintf("region %d set", n), nil
}

func clearCmd(_ *term.Terminal, arg []string) (res string, err error) {
	n, err := strconv.Atoi(arg[0])

	if err != nil {
		return "", fmt.Errorf("invalid region, %v", err)
	}

	Target.ClearRegion(n)

	return fmt.Sprintf("region %d cleared", n), nil
}

func loadCmd(_ *term.Terminal, _ []string) (res string, err error) {
	mem.Apply(Target)

	return fmt.Sprintf("loaded %d regions", len(mem.Table())), nil
}
