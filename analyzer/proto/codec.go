/*
NaiveSystems Analyze - A tool for static code analysis
Copyright (C) 2023  Naive Systems Ltd.

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

package proto

import (
	"fmt"
	"sync"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/encoding/prototext"
	protobuf "google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/dynamicpb"
)

// The wire schema of results, equivalent to:
//
//	syntax = "proto3";
//	package depbase;
//	message Result {
//	  string path = 1;
//	  int32 line_number = 2;
//	  int32 column = 3;
//	  string error_message = 4;
//	  string ruleset = 5;
//	  string rule_id = 6;
//	  int32 severity = 7;
//	  string id = 8;
//	  string name = 9;
//	  string base_class = 10;
//	  string verdict = 11;
//	}
//	message ResultsList { repeated Result results = 1; }
type fieldSpec struct {
	name   string
	number int32
	kind   descriptorpb.FieldDescriptorProto_Type
}

var resultFields = []fieldSpec{
	{"path", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING},
	{"line_number", 2, descriptorpb.FieldDescriptorProto_TYPE_INT32},
	{"column", 3, descriptorpb.FieldDescriptorProto_TYPE_INT32},
	{"error_message", 4, descriptorpb.FieldDescriptorProto_TYPE_STRING},
	{"ruleset", 5, descriptorpb.FieldDescriptorProto_TYPE_STRING},
	{"rule_id", 6, descriptorpb.FieldDescriptorProto_TYPE_STRING},
	{"severity", 7, descriptorpb.FieldDescriptorProto_TYPE_INT32},
	{"id", 8, descriptorpb.FieldDescriptorProto_TYPE_STRING},
	{"name", 9, descriptorpb.FieldDescriptorProto_TYPE_STRING},
	{"base_class", 10, descriptorpb.FieldDescriptorProto_TYPE_STRING},
	{"verdict", 11, descriptorpb.FieldDescriptorProto_TYPE_STRING},
}

var (
	descOnce   sync.Once
	descErr    error
	resultDesc protoreflect.MessageDescriptor
	listDesc   protoreflect.MessageDescriptor
)

func buildDescriptors() {
	result := &descriptorpb.DescriptorProto{Name: protobuf.String("Result")}
	for _, f := range resultFields {
		result.Field = append(result.Field, &descriptorpb.FieldDescriptorProto{
			Name:   protobuf.String(f.name),
			Number: protobuf.Int32(f.number),
			Label:  descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
			Type:   f.kind.Enum(),
		})
	}
	list := &descriptorpb.DescriptorProto{
		Name: protobuf.String("ResultsList"),
		Field: []*descriptorpb.FieldDescriptorProto{{
			Name:     protobuf.String("results"),
			Number:   protobuf.Int32(1),
			Label:    descriptorpb.FieldDescriptorProto_LABEL_REPEATED.Enum(),
			Type:     descriptorpb.FieldDescriptorProto_TYPE_MESSAGE.Enum(),
			TypeName: protobuf.String(".depbase.Result"),
		}},
	}
	file := &descriptorpb.FileDescriptorProto{
		Name:        protobuf.String("depbase/results.proto"),
		Package:     protobuf.String("depbase"),
		Syntax:      protobuf.String("proto3"),
		MessageType: []*descriptorpb.DescriptorProto{result, list},
	}
	fd, err := protodesc.NewFile(file, nil)
	if err != nil {
		descErr = fmt.Errorf("protodesc.NewFile: %v", err)
		return
	}
	resultDesc = fd.Messages().ByName("Result")
	listDesc = fd.Messages().ByName("ResultsList")
}

func descriptors() error {
	descOnce.Do(buildDescriptors)
	return descErr
}

func toMessage(list *ResultsList) (*dynamicpb.Message, error) {
	if err := descriptors(); err != nil {
		return nil, err
	}
	msg := dynamicpb.NewMessage(listDesc)
	if len(list.Results) == 0 {
		return msg, nil
	}
	results := msg.Mutable(listDesc.Fields().ByName("results")).List()
	for _, r := range list.Results {
		m := dynamicpb.NewMessage(resultDesc)
		setString(m, "path", r.Path)
		setInt32(m, "line_number", r.LineNumber)
		setInt32(m, "column", r.Column)
		setString(m, "error_message", r.ErrorMessage)
		setString(m, "ruleset", r.Ruleset)
		setString(m, "rule_id", r.RuleId)
		setInt32(m, "severity", r.Severity)
		setString(m, "id", r.Id)
		setString(m, "name", r.Name)
		setString(m, "base_class", r.BaseClass)
		setString(m, "verdict", r.Verdict)
		results.Append(protoreflect.ValueOfMessage(m))
	}
	return msg, nil
}

func fromMessage(msg protoreflect.Message) *ResultsList {
	list := &ResultsList{}
	results := msg.Get(listDesc.Fields().ByName("results")).List()
	for i := 0; i < results.Len(); i++ {
		m := results.Get(i).Message()
		list.Results = append(list.Results, &Result{
			Path:         getString(m, "path"),
			LineNumber:   getInt32(m, "line_number"),
			Column:       getInt32(m, "column"),
			ErrorMessage: getString(m, "error_message"),
			Ruleset:      getString(m, "ruleset"),
			RuleId:       getString(m, "rule_id"),
			Severity:     getInt32(m, "severity"),
			Id:           getString(m, "id"),
			Name:         getString(m, "name"),
			BaseClass:    getString(m, "base_class"),
			Verdict:      getString(m, "verdict"),
		})
	}
	return list
}

func setString(m *dynamicpb.Message, name protoreflect.Name, v string) {
	if v != "" {
		m.Set(resultDesc.Fields().ByName(name), protoreflect.ValueOfString(v))
	}
}

func setInt32(m *dynamicpb.Message, name protoreflect.Name, v int32) {
	if v != 0 {
		m.Set(resultDesc.Fields().ByName(name), protoreflect.ValueOfInt32(v))
	}
}

func getString(m protoreflect.Message, name protoreflect.Name) string {
	return m.Get(resultDesc.Fields().ByName(name)).String()
}

func getInt32(m protoreflect.Message, name protoreflect.Name) int32 {
	return int32(m.Get(resultDesc.Fields().ByName(name)).Int())
}

// MarshalResults encodes the list in protobuf wire format.
func MarshalResults(list *ResultsList) ([]byte, error) {
	msg, err := toMessage(list)
	if err != nil {
		return nil, err
	}
	return protobuf.Marshal(msg)
}

func UnmarshalResults(b []byte) (*ResultsList, error) {
	if err := descriptors(); err != nil {
		return nil, err
	}
	msg := dynamicpb.NewMessage(listDesc)
	if err := protobuf.Unmarshal(b, msg); err != nil {
		return nil, fmt.Errorf("proto.Unmarshal: %v", err)
	}
	return fromMessage(msg), nil
}

// MarshalResultsJSON uses the proto field names, the same as the json files
// consumed by the report viewers.
func MarshalResultsJSON(list *ResultsList) ([]byte, error) {
	msg, err := toMessage(list)
	if err != nil {
		return nil, err
	}
	options := protojson.MarshalOptions{
		Multiline:     true,
		Indent:        "  ",
		UseProtoNames: true,
	}
	return options.Marshal(msg)
}

func MarshalResultsText(list *ResultsList) ([]byte, error) {
	msg, err := toMessage(list)
	if err != nil {
		return nil, err
	}
	return prototext.MarshalOptions{Multiline: true}.Marshal(msg)
}

func UnmarshalResultsText(b []byte) (*ResultsList, error) {
	if err := descriptors(); err != nil {
		return nil, err
	}
	msg := dynamicpb.NewMessage(listDesc)
	if err := prototext.Unmarshal(b, msg); err != nil {
		return nil, fmt.Errorf("prototext.Unmarshal: %v", err)
	}
	return fromMessage(msg), nil
}
