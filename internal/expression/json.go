package expression

import (
	"encoding/json"
	"errors"
	"fmt"
)

type nodeWrapper struct {
	Left     *operandWrapper `json:"left"`
	Operator string          `json:"operator,omitempty"`
	Right    *operandWrapper `json:"right,omitempty"`
}

type operandWrapper struct {
	Type     string          `json:"type"`
	Value    json.RawMessage `json:"value,omitempty"`
	Name     string          `json:"name,omitempty"`
	Function string          `json:"function,omitempty"`
	Node     *nodeWrapper    `json:"node,omitempty"`
}

func wrapNode(n *Node) (*nodeWrapper, error) {
	if n == nil {
		return nil, errors.New("nil node")
	}

	left, err := wrapOperand(n.Left)
	if err != nil {
		return nil, err
	}
	wrapper := &nodeWrapper{Left: left, Operator: n.Operator.String()}

	if n.Right != nil {
		wrapper.Right, err = wrapOperand(n.Right)
		if err != nil {
			return nil, err
		}
	}
	return wrapper, nil
}

func wrapOperand(operand Operand) (*operandWrapper, error) {
	// Marshal based on type of operand
	switch v := operand.(type) {
	case Constant:
		data, err := json.Marshal(v.Value)
		if err != nil {
			return nil, err
		}
		return &operandWrapper{Type: "Constant", Value: data}, nil
	case Variable:
		return &operandWrapper{Type: "Variable", Name: v.Name}, nil
	case Group:
		node, err := wrapNode(v.Node)
		if err != nil {
			return nil, err
		}
		return &operandWrapper{Type: "Group", Node: node}, nil
	case TrigCall:
		node, err := wrapNode(v.Argument)
		if err != nil {
			return nil, err
		}
		return &operandWrapper{Type: "Trig", Function: v.Function.String(), Node: node}, nil
	default:
		return nil, fmt.Errorf("unknown operand type %T", operand)
	}
}

func (n *Node) MarshalJSON() ([]byte, error) {
	wrapper, err := wrapNode(n)
	if err != nil {
		return nil, err
	}
	return json.Marshal(wrapper)
}

func unwrapNode(wrapper *nodeWrapper) (*Node, error) {
	if wrapper == nil || wrapper.Left == nil {
		return nil, errors.New("node without left operand")
	}

	left, err := unwrapOperand(wrapper.Left)
	if err != nil {
		return nil, err
	}
	node := &Node{Left: left}

	if wrapper.Operator != "" {
		op, ok := operatorFromSymbol(wrapper.Operator)
		if !ok {
			return nil, fmt.Errorf("unknown operator %q", wrapper.Operator)
		}
		node.Operator = op
	}

	if wrapper.Right != nil {
		node.Right, err = unwrapOperand(wrapper.Right)
		if err != nil {
			return nil, err
		}
	} else if node.Operator != NoOperator {
		return nil, fmt.Errorf("operator %q without right operand", wrapper.Operator)
	}
	return node, nil
}

func unwrapOperand(wrapper *operandWrapper) (Operand, error) {
	// Unmarshal based on type of operand
	switch wrapper.Type {
	case "Constant":
		var value float64
		if err := json.Unmarshal(wrapper.Value, &value); err != nil {
			return nil, err
		}
		return Constant{Value: value}, nil
	case "Variable":
		if wrapper.Name == "" {
			return nil, errors.New("variable without name")
		}
		return Variable{Name: wrapper.Name}, nil
	case "Group":
		node, err := unwrapNode(wrapper.Node)
		if err != nil {
			return nil, err
		}
		return Group{Node: node}, nil
	case "Trig":
		fn, ok := trigFromName(wrapper.Function)
		if !ok {
			return nil, fmt.Errorf("unknown function %q", wrapper.Function)
		}
		node, err := unwrapNode(wrapper.Node)
		if err != nil {
			return nil, err
		}
		return TrigCall{Function: fn, Argument: node}, nil
	default:
		return nil, fmt.Errorf("unknown type %q", wrapper.Type)
	}
}

func (n *Node) UnmarshalJSON(data []byte) error {
	var wrapper nodeWrapper
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return err
	}
	node, err := unwrapNode(&wrapper)
	if err != nil {
		return err
	}
	*n = *node
	return nil
}
