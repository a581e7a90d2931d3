package model_test

import (
	"testing"

	"github.com/raidsight/raidsight/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFightWindow(t *testing.T) {
	Convey("Given fight windows", t, func() {
		Convey("Duration is the window length", func() {
			w := model.FightWindow{StartTime: 10_000, EndTime: 70_000}
			So(w.Duration(), ShouldEqual, 60_000)
		})

		Convey("Inverted windows clamp to zero", func() {
			w := model.FightWindow{StartTime: 70_000, EndTime: 10_000}
			So(w.Duration(), ShouldEqual, 0)
		})
	})
}

func TestActorNames(t *testing.T) {
	Convey("Given a report actor table", t, func() {
		meta := model.ReportMetadata{
			Actors: map[int]model.PlayerInfo{
				1: {ID: 1, Name: "Aeris", Class: "Priest", Spec: "Shadow"},
				2: {ID: 2, Name: "Borin", Class: "Warrior", Spec: "Fury"},
			},
		}

		Convey("ActorNames flattens it to id -> name", func() {
			names := meta.ActorNames()
			So(names, ShouldHaveLength, 2)
			So(names[1], ShouldEqual, "Aeris")
			So(names[2], ShouldEqual, "Borin")
		})
	})
}
