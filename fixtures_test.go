package dolly_test

import (
	"sync"
)

type Foo struct {
	Name string
	bar  *Bar
}

type Bar struct {
	Label string
	foo   *Foo
}

// newFooBar returns a Foo and a Bar that point at each other.
func newFooBar() (*Foo, *Bar) {
	foo := &Foo{Name: "foo"}
	bar := &Bar{Label: "bar", foo: foo}
	foo.bar = bar
	return foo, bar
}

type Holder struct {
	A *Foo
	B *Foo
}

type Tree struct {
	Value    int
	Children []*Tree
	Attrs    map[string]string
	Weights  [3]float64
}

type Node struct {
	Value int
	Next  *Node
}

func newList(n int) *Node {
	var head *Node
	for i := n; i > 0; i-- {
		head = &Node{Value: i, Next: head}
	}
	return head
}

type Shape interface {
	Area() float64
}

type Square struct {
	Side float64
}

func (s *Square) Area() float64 { return s.Side * s.Side }

type Canvas struct {
	Shapes []Shape
}

type Base struct {
	ID int
}

type Derived struct {
	Base
	Name string
}

type Worker struct {
	Name string
	Jobs chan int
}

type Counter struct {
	mu sync.Mutex
	N  int
}
