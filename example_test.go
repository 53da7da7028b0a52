package revm_test

import (
	"fmt"

	"github.com/coregx/revm"
	"github.com/coregx/revm/meta"
)

// ExampleCompile demonstrates basic pattern compilation and matching.
func ExampleCompile() {
	re, err := revm.Compile("a+b")
	if err != nil {
		panic(err)
	}

	fmt.Println(re.MatchString("xxaab"))
	// Output: true
}

// ExampleCompile_error demonstrates the error for a malformed pattern.
func ExampleCompile_error() {
	_, err := revm.Compile("(ab")
	fmt.Println(err)
	// Output: syntax: unexpected end of pattern at offset 3 in "(ab" (expected ")", "|")
}

// ExampleMustCompile demonstrates panic-on-error compilation.
func ExampleMustCompile() {
	re := revm.MustCompile("hello")
	fmt.Println(re.MatchString("hello world"))
	// Output: true
}

// ExampleRegex_FindStringIndex demonstrates finding match positions.
func ExampleRegex_FindStringIndex() {
	re := revm.MustCompile("b+")
	loc := re.FindStringIndex("abbc")
	fmt.Printf("Match at [%d:%d]\n", loc[0], loc[1])
	// Output: Match at [1:3]
}

// ExampleRegex_FindStringSubmatch demonstrates capture groups.
func ExampleRegex_FindStringSubmatch() {
	re := revm.MustCompile("(a+)(b+)")
	fmt.Printf("%q\n", re.FindStringSubmatch("xaabbb"))
	fmt.Println(re.FindStringSubmatchIndex("xaabbb"))
	// Output:
	// ["aabbb" "aa" "bbb"]
	// [1 6 1 3 3 6]
}

// ExampleRegex_Program demonstrates printing the compiled program.
func ExampleRegex_Program() {
	config := revm.DefaultConfig()
	config.Anchored = true
	re, err := revm.CompileWithConfig("a+b", config)
	if err != nil {
		panic(err)
	}
	fmt.Print(re.Program())
	// Output:
	//  0. char a
	//  1. split 0, 2
	//  2. char b
	//  3. match
}

// ExampleCompileWithConfig demonstrates choosing an engine.
func ExampleCompileWithConfig() {
	config := revm.DefaultConfig()
	config.Strategy = meta.UseBacktrack
	re, err := revm.CompileWithConfig("(a|ab)(c|bcd)", config)
	if err != nil {
		panic(err)
	}
	fmt.Println(re.Strategy(), re.FindStringSubmatchIndex("abcd"))
	// Output: backtrack [0 4 0 1 1 4]
}
