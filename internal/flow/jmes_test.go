package flow

func (s *UnitTestSuite) TestEvalAny() {
	obj := map[string]any{
		"key1": "value1",
		"key2": map[string]any{
			"subkey1": "subvalue1",
			"subkey2": 42,
		},
		"key3": []any{"elem1", "elem2", "elem3"},
		"key4": nil,
	}

	v, err := EvalAny("key1", obj)
	s.NoError(err)
	s.Equal("value1", v.(string))

	v, err = EvalAny("key2.subkey2", obj)
	s.NoError(err)
	s.Equal(42, v.(int))

	v, err = EvalAny("key3[1]", obj)
	s.NoError(err)
	s.Equal("elem2", v.(string))

	v, err = EvalAny("nonexistent", obj)
	s.NoError(err)
	s.Nil(v)

	_, err = EvalAny("key3[", obj)
	s.Error(err)
}

func (s *UnitTestSuite) TestSelectRecords() {
	doc := map[string]any{
		"clients": []any{
			map[string]any{"client_id": "a", "region": "eu"},
			map[string]any{"client_id": "b", "region": "us"},
		},
	}

	recs, err := SelectRecords("clients", doc)
	s.NoError(err)
	s.Len(recs, 2)

	recs, err = SelectRecords("clients[?region=='us'] | [0]", doc)
	s.NoError(err)
	s.Len(recs, 1)
	s.Equal("b", recs[0]["client_id"])

	// no expression: a single object document is one record
	recs, err = SelectRecords("", map[string]any{"client_id": "c"})
	s.NoError(err)
	s.Len(recs, 1)

	_, err = SelectRecords("missing", doc)
	s.Error(err)

	_, err = SelectRecords("clients[*].client_id", doc)
	s.Error(err)
}
