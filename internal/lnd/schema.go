package lnd

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jhump/protoreflect/desc/protoparse"
	"google.golang.org/protobuf/reflect/protoreflect"
)

// Schema is the dispatch table built from the node's RPC service definition.
// It is loaded once at construction; all runtime method lookup goes through
// it. Only unary methods are callable.
type Schema struct {
	serviceName string
	methods     map[string]rpcMethod
}

type rpcMethod struct {
	// name is the method's declared name, e.g. "GetInfo".
	name string
	// fullPath is the gRPC wire path, e.g. "/lnrpc.Lightning/GetInfo".
	fullPath string
	input    protoreflect.MessageDescriptor
	output   protoreflect.MessageDescriptor
}

// LoadSchema parses the .proto file at path and builds the dispatch table
// from its first service. Files without a service are rejected.
func LoadSchema(path string) (*Schema, error) {
	parser := protoparse.Parser{
		ImportPaths: []string{filepath.Dir(path)},
	}

	fds, err := parser.ParseFiles(filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("parse rpc schema %s: %w", path, err)
	}

	services := fds[0].GetServices()
	if len(services) == 0 {
		return nil, fmt.Errorf("rpc schema %s declares no service", path)
	}
	svc := services[0]

	s := &Schema{
		serviceName: svc.GetFullyQualifiedName(),
		methods:     make(map[string]rpcMethod),
	}

	for _, m := range svc.GetMethods() {
		if m.IsClientStreaming() || m.IsServerStreaming() {
			continue
		}
		s.methods[strings.ToLower(m.GetName())] = rpcMethod{
			name:     m.GetName(),
			fullPath: fmt.Sprintf("/%s/%s", s.serviceName, m.GetName()),
			input:    m.GetInputType().UnwrapMessage(),
			output:   m.GetOutputType().UnwrapMessage(),
		}
	}

	return s, nil
}

// ServiceName returns the fully-qualified name of the schema's service.
func (s *Schema) ServiceName() string {
	return s.serviceName
}

// Methods returns the callable (unary) method names in sorted order.
func (s *Schema) Methods() []string {
	names := make([]string, 0, len(s.methods))
	for _, m := range s.methods {
		names = append(names, m.name)
	}
	sort.Strings(names)
	return names
}

// Lookup resolves a method by name, case-insensitively, so that callers may
// use "getInfo" as well as "GetInfo".
func (s *Schema) Lookup(name string) (rpcMethod, error) {
	m, ok := s.methods[strings.ToLower(name)]
	if !ok {
		return rpcMethod{}, fmt.Errorf("%w: %s", ErrUnknownMethod, name)
	}
	return m, nil
}
