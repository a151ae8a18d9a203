package geosearch

import (
	"errors"
	"testing"

	. "gopkg.in/check.v1"
)

// Hook up gocheck into the "go test" runner.
func Test(t *testing.T) { TestingT(t) }

type EngineSuite struct {
	engine *Engine
	world  *Engine
}

var _ = Suite(&EngineSuite{})

func (s *EngineSuite) SetUpSuite(c *C) {
	s.engine = newTestEngine(londonEntries()...)
	s.world = New(&Dataset{Cities: worldEntries()}, WithLogger(nopLogger()))
}

func (s *EngineSuite) TestNewEngine(c *C) {
	c.Assert(s.engine.Err(), IsNil)
	c.Assert(s.engine.Catalog().Len(), Equals, 2)
	c.Assert(s.engine.Index().Len(), Not(Equals), 0)
	c.Assert(s.engine.TopSet().Len(), Equals, 2)
	c.Assert(s.engine.Countries(), DeepEquals, []string{"GB"})
}

func (s *EngineSuite) TestSearchGlobal(c *C) {
	c.Assert(ids(s.engine.SearchGlobal("london")), DeepEquals, []string{"1", "2"})
	c.Assert(ids(s.engine.SearchGlobal("LONDON")), DeepEquals, []string{"1", "2"})
	c.Assert(ids(s.engine.SearchGlobal("london derry")), DeepEquals, []string{"2"})
	c.Assert(ids(s.engine.SearchGlobal("  derry  ")), DeepEquals, []string{"2"})
	c.Assert(s.engine.SearchGlobal("paris"), HasLen, 0)
}

func (s *EngineSuite) TestSearchInCountry(c *C) {
	c.Assert(ids(s.engine.SearchInCountry("GB", "lon")), DeepEquals, []string{"1", "2"})
	c.Assert(s.engine.SearchInCountry("FR", "lon"), HasLen, 0)
	c.Assert(s.engine.SearchInCountry("gb", "lon"), HasLen, 0)
	c.Assert(ids(s.engine.SearchInCountry("GB", "")), DeepEquals, []string{"1", "2"})
}

func (s *EngineSuite) TestLookupCity(c *C) {
	city, ok := s.engine.LookupCity("1")
	c.Assert(ok, Equals, true)
	c.Assert(city.Name, Equals, "London")
	c.Assert(city.DisplayName(), Equals, "London")
	pop, known := city.Population()
	c.Assert(known, Equals, true)
	c.Assert(pop, Equals, int64(9000000))

	_, ok = s.engine.LookupCity("3")
	c.Assert(ok, Equals, false)
	_, ok = s.engine.LookupCity("")
	c.Assert(ok, Equals, false)
}

func (s *EngineSuite) TestCountryBounds(c *C) {
	b, ok := s.engine.CountryBounds("GB")
	c.Assert(ok, Equals, true)
	c.Assert(b.North > b.South, Equals, true)
	c.Assert(b.East > b.West, Equals, true)

	_, ok = s.engine.CountryBounds("FR")
	c.Assert(ok, Equals, false)
}

func (s *EngineSuite) TestStats(c *C) {
	st := s.world.Stats()
	c.Assert(st.Cities, Equals, len(worldEntries()))
	c.Assert(st.Countries, Equals, 8)
	c.Assert(st.Dropped, Equals, 0)
	c.Assert(st.Duplicates, Equals, 0)
	c.Assert(st.Err, IsNil)
}

func (s *EngineSuite) TestDefaultLanguageIsEnglish(c *C) {
	c.Assert(ids(s.world.SearchGlobal("japan")), DeepEquals, []string{"tokyo"})
	c.Assert(ids(s.world.SearchInCountry("NZ", "zealand")), DeepEquals, []string{"auckland"})
}

func (s *EngineSuite) TestEmptyEngine(c *C) {
	e := New(nil, WithLogger(nopLogger()))
	c.Assert(errors.Is(e.Err(), ErrNoDataset), Equals, true)
	c.Assert(e.SearchGlobal(""), HasLen, 0)
	c.Assert(e.SearchGlobal("x"), HasLen, 0)
	c.Assert(e.SearchInCountry("GB", ""), HasLen, 0)
	c.Assert(e.Countries(), HasLen, 0)
}

func BenchmarkNew(b *testing.B) {
	entries := manyEntries(5000)
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		New(&Dataset{Cities: entries}, WithLogger(nopLogger()))
	}
}

func BenchmarkSearchGlobal(b *testing.B) {
	e := newTestEngine(manyEntries(5000)...)
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		e.SearchGlobal("town 12")
	}
}

func BenchmarkSearchInCountry(b *testing.B) {
	e := newTestEngine(manyEntries(5000)...)
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		e.SearchInCountry("FR", "town")
	}
}
