package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Contract represents a compiled contract found in the artifacts directory
type Contract struct {
	Name         string    `json:"name"`
	Path         string    `json:"path"`
	ArtifactPath string    `json:"artifactPath,omitempty"`
	Artifact     *Artifact `json:"artifact,omitempty"`
}

// FullName returns the "path:Name" identifier of the contract
func (c *Contract) FullName() string {
	if c.Path == "" {
		return c.Name
	}
	return fmt.Sprintf("%s:%s", c.Path, c.Name)
}

// Artifact represents a compilation artifact. Both the Hardhat layout
// (bytecode as a hex string) and the Foundry layout (bytecode.object) are
// accepted.
type Artifact struct {
	Format       string          `json:"_format,omitempty"`
	ContractName string          `json:"contractName,omitempty"`
	SourceName   string          `json:"sourceName,omitempty"`
	ABI          json.RawMessage `json:"abi"`
	Bytecode     Bytecode        `json:"bytecode"`
	Metadata     struct {
		Settings struct {
			CompilationTarget map[string]string `json:"compilationTarget"`
		} `json:"settings"`
	} `json:"metadata"`
}

// Bytecode is the creation bytecode of an artifact as a 0x-prefixed hex string
type Bytecode string

func (b *Bytecode) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*b = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*b = Bytecode(s)
		return nil
	}

	var obj struct {
		Object string `json:"object"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("unsupported bytecode encoding: %w", err)
	}
	*b = Bytecode(obj.Object)
	return nil
}

// IsEmpty reports whether the artifact carries no creation code (interfaces,
// abstract contracts)
func (b Bytecode) IsEmpty() bool {
	s := strings.TrimPrefix(string(b), "0x")
	return s == ""
}

// NeedsLinking reports whether the bytecode still contains library placeholders
func (b Bytecode) NeedsLinking() bool {
	return strings.Contains(string(b), "__")
}

// Bytes decodes the hex bytecode
func (b Bytecode) Bytes() ([]byte, error) {
	s := string(b)
	if !strings.HasPrefix(s, "0x") {
		s = "0x" + s
	}
	return hexutil.Decode(s)
}

// ParseABI parses the artifact's JSON ABI
func (a *Artifact) ParseABI() (*abi.ABI, error) {
	if len(a.ABI) == 0 {
		return nil, fmt.Errorf("artifact has no ABI")
	}
	parsed, err := abi.JSON(bytes.NewReader(a.ABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ABI: %w", err)
	}
	return &parsed, nil
}
