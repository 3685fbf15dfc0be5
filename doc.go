/*
Package turing is a deterministic single-tape Turing machine simulator.

A machine is described by a start, an accept and a reject state, an input
alphabet and an ordered list of transition rules. Given an input string the
simulator runs the machine until it halts and reports whether it accepted.

# Concept

The tape is a growable row of symbols with a head that starts on the first
input symbol. Moving right past the end extends the tape with blanks; moving
left past cell 0 is a fatal tape underflow. For every step the first rule
(in declaration order) matching the current state and symbol fires: it writes
a symbol, moves the head and changes state. The machine accepts as soon as it
is in the accept state and rejects when a rule moves it into the reject state
or when no rule matches.

# Definition Format

	q0              <- start state
	qA              <- accept state
	qR              <- reject state
	0,1             <- input alphabet
	q0(0,0,R)q0     <- from(read,write,direction)to
	q0(1,1,R)qA

A field holding a single space stands for the blank symbol. The same rules
can be written as a YAML or JSON document, or built in Go with package dsl.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/turing"
	)

	func main() {
		m, err := turing.Load("contains-one.tm", turing.WithMaxSteps(10_000))
		if err != nil {
			log.Fatal(err)
		}

		res, err := m.Simulate(context.Background(), "0001")
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(res.Verdict, res.Steps)
	}

Machines that never halt make Simulate block until its context is done or a
configured step ceiling or timeout stops them.
*/
package turing
