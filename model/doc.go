// Package model loads the animation section of a source model document.
//
// The document is a JSON object with an "animations" array. Each animation
// holds a map of animators keyed by id; each animator is a named bone (or an
// "effect" track) with a flat list of keyframes:
//
//	{
//	  "animations": [{
//	    "name": "wave",
//	    "animators": {
//	      "3f2a...": {
//	        "name": "RightArm",
//	        "type": "bone",
//	        "keyframes": [{
//	          "channel": "rotation",
//	          "time": 0.5,
//	          "interpolation": "catmullrom",
//	          "data_points": [{"x": "-90", "y": 0, "z": 0}]
//	        }]
//	      }
//	    }
//	  }]
//	}
//
// Loading is best-effort: numeric fields may be numbers or numeric strings and
// are coerced later by curve.Float. Only structurally invalid JSON fails.
package model
