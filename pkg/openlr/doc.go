// Package openlr implements the OpenLR map-referencing protocol: a compact,
// map-independent way to describe a location in a road network so that two
// parties holding different digital maps can agree on what is referenced.
//
// The physical representation is an OpenLR binary version 3 payload, usually
// transported as Base64 text. Serialize and Deserialize convert between
// location references and that payload; Encode and Decode additionally bind
// references to a host map supplied through the Graph interface.
//
// Decoding a line reference resolves it against the host map: candidate
// nodes and rated candidate lines are searched around every location
// reference point, shortest paths connect consecutive points, and the
// concatenated path is trimmed by the offsets. Encoding runs the reverse:
// the location is expanded to valid network nodes, covered by shortest
// paths with intermediate points inserted wherever the location deviates,
// and the resulting point sequence is serialized.
//
// Example:
//
//	location, err := openlr.DecodeBase64(openlr.DefaultDecoderConfig(), graph, "CwmShiVYczPJBgCs/y0zAQ==")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	line := location.(openlr.LineLocation)
//	fmt.Println(line.Path)
//
// The memgraph package provides a ready-made in-memory Graph implementation
// with a geospatial index for hosts that do not bring their own map
// storage.
package openlr
